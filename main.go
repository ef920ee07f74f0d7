package main

import (
	"newshub/news-api/api"
	"newshub/news-api/config"
	"newshub/news-api/db"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	if config.MigrateOnly() {
		if _, err := db.New(); err != nil {
			panic(err)
		}
		return
	}

	a, err := api.NewRouter()
	if err != nil {
		panic(err)
	}

	zap.L().Info("Server starting")

	err = a.Router.Run(":" + viper.GetString("host.port"))
	if err != nil {
		panic(err)
	}
}
