package main

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"

	"github.com/fieldday/scorekeeper/internal/adapters/http/api"
	service "github.com/fieldday/scorekeeper/internal/app"
	"github.com/fieldday/scorekeeper/internal/config"
	"github.com/fieldday/scorekeeper/pkg/logger"
	"github.com/fieldday/scorekeeper/pkg/metrics"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainComponents(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("SCOREKEEPER_ADDR", ":8080")
			_ = os.Setenv("SCOREKEEPER_SESSION_QUEUE_SIZE", "32")
			defer func() {
				_ = os.Unsetenv("SCOREKEEPER_ADDR")
				_ = os.Unsetenv("SCOREKEEPER_SESSION_QUEUE_SIZE")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.SessionQueueSize, convey.ShouldEqual, 32)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then the service should be creatable with default options", func() {
				svc := service.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And with custom options", func() {
				svc := service.New(
					service.WithSessionQueueSize(16),
					service.WithLogger(logger.Named("test")),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := service.New()
			convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
			defer svc.Stop()

			convey.Convey("Then routes should register on a mux", func() {
				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)

				mux := http.NewServeMux()
				convey.So(func() { server.Register(context.Background(), mux) }, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then a metrics manager should be creatable", func() {
				manager := metrics.NewManager(metrics.WithRegistry(prometheus.NewRegistry()))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}
