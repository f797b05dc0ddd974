package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	v1 "github.com/emrgen/cms/apis/v1"
	"github.com/emrgen/cms/internal/cache"
	"github.com/emrgen/cms/internal/compress"
	"github.com/emrgen/cms/internal/config"
	"github.com/emrgen/cms/internal/jobs"
	"github.com/emrgen/cms/internal/module"
	"github.com/emrgen/cms/internal/queue"
	"github.com/emrgen/cms/internal/service"
	"github.com/emrgen/cms/internal/store"
	grpcmiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcvalidator "github.com/grpc-ecosystem/go-grpc-middleware/validator"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
	"google.golang.org/grpc"
)

// Server represents the server
type Server struct {
	cfg *config.Config
}

// NewServer creates a new server
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Start starts the server
func (s *Server) Start() {
	if err := Start(s.cfg); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// NewServices wires the domain services on top of the store.
func NewServices(st store.Store, contentCache cache.ContentCache, events queue.EventQueue, schema config.SchemaConfig) *Services {
	return &Services{
		Schema: service.NewSchemaRegistry(st),
		Content: service.NewContentService(st, contentCache, events, service.ContentOptions{
			DefaultLanguage: schema.DefaultLanguage,
			Strict:          schema.Strict,
		}),
		Translations: service.NewTranslationService(st, schema.Strict),
		Taxonomy:     service.NewTaxonomyService(st),
		Navigation:   service.NewNavigationService(st),
	}
}

// NewGrpcServer creates the grpc server with the three cms services registered.
func NewGrpcServer(services *Services) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcmiddleware.ChainUnaryServer(
			// log the request time with the final status code
			UnaryGrpcRequestTimeInterceptor(),
			UnaryErrorInterceptor(),
			grpcvalidator.UnaryServerInterceptor(),
			// inject the caller id into the context
			module.UnaryServerActorInterceptor(),
		)),
	)

	v1.RegisterSchemaServiceServer(grpcServer, NewSchemaServer(services))
	v1.RegisterContentServiceServer(grpcServer, NewContentServer(services))
	v1.RegisterTreeServiceServer(grpcServer, NewTreeServer(services))

	return grpcServer
}

// NewHttpHandler returns the rest api wrapped in the cors handler.
func NewHttpHandler(services *Services) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // All origins are allowed
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "PUT"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", module.ActorHeader},
		AllowCredentials: true,
	})

	return c.Handler(NewRestHandler(services).Routes())
}

func newContentCache(cfg *config.Config, client *redis.Client) (cache.ContentCache, error) {
	if !cfg.Cache.Enabled {
		return cache.NewNopContentCache(), nil
	}
	if cfg.Cache.Driver == "memory" {
		return cache.NewMemoryContentCache(), nil
	}

	encoder, err := compress.New(cfg.Cache.Compression)
	if err != nil {
		return nil, err
	}

	return cache.NewRedisContentCache(client, encoder, cfg.Cache.TTL), nil
}

func newEventQueue(cfg *config.Config, client *redis.Client) (queue.EventQueue, error) {
	switch cfg.Queue.Driver {
	case "redis":
		return queue.NewRedisStreamQueue(client, cfg.Queue.Stream), nil
	case "kafka":
		return queue.NewKafkaQueue(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	default:
		return queue.NewNopQueue(), nil
	}
}

// listen opens the grpc and http listeners, neither is left open on error.
func listen(grpcAddr, httpAddr string) (net.Listener, net.Listener, error) {
	gl, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return nil, nil, err
	}

	rl, err := net.Listen("tcp", httpAddr)
	if err != nil {
		if cerr := gl.Close(); cerr != nil {
			logrus.Errorf("error closing grpc listener: %v", cerr)
		}
		return nil, nil, err
	}

	return gl, rl, nil
}

// Start starts the grpc and http servers
func Start(cfg *config.Config) error {
	var err error

	cfg.ConfigureLogger()

	grpcPort := ":" + cfg.GrpcPort
	httpPort := ":" + cfg.HttpPort

	rdb := config.GetDb(cfg)
	cmsStore := store.NewGormStore(rdb)
	err = cmsStore.Migrate()
	if err != nil {
		return err
	}

	redisClient := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redisClient.Close()

	contentCache, err := newContentCache(cfg, redisClient)
	if err != nil {
		return err
	}

	events, err := newEventQueue(cfg, redisClient)
	if err != nil {
		return err
	}
	defer func() {
		if err := events.Close(); err != nil {
			logrus.Errorf("error closing event queue: %v", err)
		}
	}()

	services := NewServices(cmsStore, contentCache, events, cfg.Schema)

	if cfg.Jobs.Enabled {
		executor := jobs.NewTaskExecutor(nil, []jobs.CronJob{
			jobs.NewCacheSyncTask(cfg.Jobs.CacheSyncCron, cmsStore, contentCache),
			jobs.NewStatsTask(cfg.Jobs.StatsCron, cmsStore),
		})
		if err := executor.Run(); err != nil {
			return err
		}
		defer executor.Stop()
	}

	gl, rl, err := listen(grpcPort, httpPort)
	if err != nil {
		return err
	}

	grpcServer := NewGrpcServer(services)
	restServer := &http.Server{
		Addr:              httpPort,
		Handler:           NewHttpHandler(services),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// make sure to wait for the servers to stop before exiting
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting rest api on: ", httpPort)
		if err := restServer.Serve(rl); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("error starting rest api: %v", err)
			}
		}
		logrus.Infof("rest api stopped")
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting grpc server on: ", grpcPort)
		if err := grpcServer.Serve(gl); err != nil {
			logrus.Infof("grpc failed to start: %v", err)
		}
		logrus.Infof("grpc server stopped")
	}()

	logrus.Infof("Press Ctrl+C to stop the server")

	// listen for interrupt signal to gracefully shut down the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	grpcServer.GracefulStop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = restServer.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("error stopping rest api: %v", err)
	}

	wg.Wait()

	return nil
}
