package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"picturestream/config"
	"picturestream/database"
	"picturestream/logger"
	redisutil "picturestream/util/redis"
	"picturestream/web"
	"picturestream/web/global"
	"picturestream/web/service"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
	defer logger.CloseLogger()

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			logger.Warning("close db err:", err)
		}
	}()

	// Redis is optional; a failed connect falls back to cookie sessions.
	if addr := config.GetRedisAddr(); addr != "" {
		_ = redisutil.Init(addr, config.GetRedisPassword(), 0)
		defer redisutil.Close()
	}

	server := web.NewServer()
	global.SetWebServer(server)
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			global.SetWebServer(server)
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func showStats() {
	logger.InitLogger(logging.WARNING)
	defer logger.CloseLogger()

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	userService := service.UserService{}
	userCount, err := userService.CountUsers()
	if err != nil {
		fmt.Println("count users failed:", err)
		return
	}

	pictureService := service.PictureService{}
	fileNames, err := pictureService.GetFileNames()
	if err != nil {
		fmt.Println("count pictures failed:", err)
		return
	}

	fmt.Println("port:", config.GetPort())
	fmt.Println("registered users:", userCount)
	fmt.Println("pictures:", len(fileNames))
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use: "picturestream",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show user and picture counts",
		Run: func(cmd *cobra.Command, args []string) {
			showStats()
		},
	}

	rootCmd.AddCommand(runCmd, statsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
