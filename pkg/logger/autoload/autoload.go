// Package autoload initializes the global logger from LOG_* environment
// variables as an import side effect:
//
//	import _ "agenthub/pkg/logger/autoload"
package autoload

import (
	configx "agenthub/pkg/config"
	logx "agenthub/pkg/logger"
)

func init() {
	cfg, err := configx.New[logx.Config]("LOG")
	if err != nil {
		logx.Init()
		return
	}
	logx.Init(*cfg)
}
