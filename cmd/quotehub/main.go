package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/radixtech/quotehub/internal/logger"
	"github.com/radixtech/quotehub/internal/server"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		logger.Module,
		fx.Provide(RegisterSnowflake),
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
