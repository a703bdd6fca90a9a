// container.go
package main

import (
	"context"
	"time"

	"github.com/Abraxas-365/hrms/migrations"
	"github.com/Abraxas-365/hrms/pkg/config"
	"github.com/Abraxas-365/hrms/pkg/dbx"
	"github.com/Abraxas-365/hrms/pkg/fsx"
	"github.com/Abraxas-365/hrms/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/hrms/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/hrms/pkg/iam/auth"
	"github.com/Abraxas-365/hrms/pkg/iam/auth/authinfra"
	"github.com/Abraxas-365/hrms/pkg/iam/user"
	"github.com/Abraxas-365/hrms/pkg/iam/user/userapi"
	"github.com/Abraxas-365/hrms/pkg/iam/user/userinfra"
	"github.com/Abraxas-365/hrms/pkg/iam/user/usersrv"
	"github.com/Abraxas-365/hrms/pkg/logx"
	"github.com/Abraxas-365/hrms/pkg/notifx"
	"github.com/Abraxas-365/hrms/pkg/notifx/notifxapi"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application/applicationapi"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application/applicationsrv"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview/interviewapi"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview/interviewinfra"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview/interviewsrv"
	"github.com/Abraxas-365/hrms/pkg/recruitment/job"
	"github.com/Abraxas-365/hrms/pkg/recruitment/job/jobapi"
	"github.com/Abraxas-365/hrms/pkg/recruitment/job/jobinfra"
	"github.com/Abraxas-365/hrms/pkg/recruitment/job/jobsrv"
	"github.com/Abraxas-365/hrms/pkg/recruitment/letter"
	"github.com/Abraxas-365/hrms/pkg/recruitment/letter/letterapi"
	"github.com/Abraxas-365/hrms/pkg/recruitment/letter/letterinfra"
	"github.com/Abraxas-365/hrms/pkg/recruitment/letter/lettersrv"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding/onboardingapi"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding/onboardinginfra"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding/onboardingsrv"
	"github.com/Abraxas-365/hrms/pkg/storage/memstore"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Mongo      *mongo.Client
	Memory     *memstore.Store
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client
	Dispatcher *notifx.Dispatcher

	// Services
	TokenService       auth.TokenService
	UserService        *usersrv.UserService
	JobService         *jobsrv.JobService
	ApplicationService *applicationsrv.ApplicationService
	InterviewService   *interviewsrv.InterviewService
	OnboardingService  *onboardingsrv.OnboardingService
	LetterService      *lettersrv.LetterService

	// API Handlers
	AuthHandlers         *auth.AuthHandlers
	UserHandlers         *userapi.UserHandlers
	JobHandlers          *jobapi.JobHandlers
	ApplicationHandlers  *applicationapi.ApplicationHandlers
	InterviewHandlers    *interviewapi.InterviewHandlers
	OnboardingHandlers   *onboardingapi.OnboardingHandlers
	LetterHandlers       *letterapi.LetterHandlers
	NotificationHandlers *notifxapi.NotificationHandlers

	// Middleware
	AuthMiddleware *auth.AuthMiddleware

	// Background Services
	Reconciler *onboardingsrv.Reconciler
}

// repositories is the persistence set for the configured driver.
type repositories struct {
	users       user.UserRepository
	jobs        job.Repository
	apps        application.Repository
	rounds      interview.RoundRepository
	sessions    interview.SessionRepository
	onboardings onboarding.Repository
	letters     letter.Repository
	tx          dbx.TxRunner
}

// NewContainer initializes the dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) *Container {
	logx.Info("🔧 Initializing dependency container...")

	c := &Container{
		Config: cfg,
	}

	repos := c.initInfrastructure(ctx)
	c.initServices(ctx, repos)

	logx.Info("✅ Container initialized successfully")
	return c
}

func (c *Container) initInfrastructure(ctx context.Context) repositories {
	logx.Info("🏗️ Initializing infrastructure...")

	repos := c.initStore(ctx)

	if c.Config.Redis.Enabled {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Address(),
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if _, err := c.Redis.Ping(ctx).Result(); err != nil {
			logx.Fatalf("Failed to connect to Redis: %v", err)
		}
		logx.Info("✅ Redis connected")
	}

	c.initFileStorage(ctx)

	dispatcher, err := notifx.NewDispatcher(c.Config.Email)
	if err != nil {
		logx.Fatalf("Failed to initialize email dispatcher: %v", err)
	}
	c.Dispatcher = dispatcher
	logx.Infof("✅ Email dispatcher configured (provider: %s)", c.Config.Email.Provider)

	logx.Info("✅ Infrastructure initialized")
	return repos
}

func (c *Container) initStore(ctx context.Context) repositories {
	switch c.Config.Database.Driver {
	case config.DriverPostgres:
		db, err := sqlx.Connect("postgres", c.Config.Database.DSN())
		if err != nil {
			logx.Fatalf("Failed to connect to database: %v", err)
		}
		db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
		db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
		db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
		c.DB = db
		logx.Info("✅ Postgres connected")

		if c.Config.Database.AutoMigrate {
			if err := migrations.Apply(ctx, db); err != nil {
				logx.Fatalf("Failed to apply migrations: %v", err)
			}
		}

		return repositories{
			users:       userinfra.NewPostgresUserRepository(db),
			jobs:        jobinfra.NewPostgresJobRepository(db),
			apps:        applicationinfra.NewPostgresApplicationRepository(db),
			rounds:      interviewinfra.NewPostgresRoundRepository(db),
			sessions:    interviewinfra.NewPostgresSessionRepository(db),
			onboardings: onboardinginfra.NewPostgresOnboardingRepository(db),
			letters:     letterinfra.NewPostgresLetterRepository(db),
			tx:          dbx.NewSQLTxRunner(db),
		}

	case config.DriverMongo:
		client, db, err := dbx.ConnectMongo(ctx, c.Config.Mongo.URI, c.Config.Mongo.Database)
		if err != nil {
			logx.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		c.Mongo = client
		logx.Infof("✅ MongoDB connected (database: %s)", c.Config.Mongo.Database)

		if err := dbx.EnsureMongoIndexes(ctx, db); err != nil {
			logx.Fatalf("Failed to create Mongo indexes: %v", err)
		}

		return repositories{
			users:       userinfra.NewMongoUserRepository(db),
			jobs:        jobinfra.NewMongoJobRepository(db),
			apps:        applicationinfra.NewMongoApplicationRepository(db),
			rounds:      interviewinfra.NewMongoRoundRepository(db),
			sessions:    interviewinfra.NewMongoSessionRepository(db),
			onboardings: onboardinginfra.NewMongoOnboardingRepository(db),
			letters:     letterinfra.NewMongoLetterRepository(db),
			tx:          dbx.NewMongoTxRunner(client, c.Config.Mongo.Transactions),
		}

	default:
		store := memstore.New()
		c.Memory = store
		logx.Warn("⚠️  Using in-memory store, data is lost on restart")

		return repositories{
			users:       store.Users(),
			jobs:        store.Jobs(),
			apps:        store.Applications(),
			rounds:      store.Rounds(),
			sessions:    store.Sessions(),
			onboardings: store.Onboardings(),
			letters:     store.Letters(),
			tx:          store,
		}
	}
}

func (c *Container) initFileStorage(ctx context.Context) {
	sc := c.Config.Storage

	switch sc.Mode {
	case config.StorageS3:
		cfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(sc.AWSRegion))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config: %v", err)
		}
		c.S3Client = s3.NewFromConfig(cfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, sc.AWSBucket, sc.S3Prefix)
		logx.Infof("✅ S3 file system configured (bucket: %s, region: %s)", sc.AWSBucket, sc.AWSRegion)

	default:
		localFS, err := fsxlocal.NewLocalFileSystem(sc.UploadDir)
		if err != nil {
			logx.Fatalf("Failed to initialize local file system: %v", err)
		}
		c.FileSystem = localFS
		logx.Infof("✅ Local file system configured (path: %s)", sc.UploadDir)
	}
}

func (c *Container) lockerAndPublisher() (interview.Locker, interview.EventPublisher) {
	sc := c.Config.Scheduling

	var locker interview.Locker
	if sc.LockBackend == config.LockRedis {
		locker = interviewinfra.NewRedisLocker(c.Redis, sc.LockTTL, sc.LockWait)
		logx.Info("✅ Using Redis scheduling locks")
	} else {
		locker = interviewinfra.NewInMemoryLocker(sc.LockWait)
		logx.Warn("⚠️  Using in-process scheduling locks (single instance only)")
	}

	var publisher interview.EventPublisher = interviewinfra.LogEventPublisher{}
	if c.Redis != nil && sc.EventChannel != "" {
		publisher = interviewinfra.NewRedisEventPublisher(c.Redis, sc.EventChannel)
		logx.Infof("✅ Interview events published on %s", sc.EventChannel)
	}
	return locker, publisher
}

func (c *Container) initServices(ctx context.Context, repos repositories) {
	logx.Info("🗄️  Initializing services...")

	passwordSvc := authinfra.NewBcryptPasswordService(c.Config.Auth.Password.BcryptCost)
	c.TokenService = auth.NewJWTServiceFromConfig(&c.Config.Auth.JWT)
	locker, publisher := c.lockerAndPublisher()

	// --- Recruitment ---
	c.OnboardingService = onboardingsrv.NewOnboardingService(repos.onboardings, repos.apps)

	c.InterviewService = interviewsrv.NewInterviewService(
		repos.sessions,
		repos.rounds,
		repos.apps,
		repos.users,
		c.OnboardingService,
		repos.tx,
		locker,
		c.Dispatcher,
		publisher,
	)

	c.JobService = jobsrv.NewJobService(repos.jobs, repos.apps)
	c.ApplicationService = applicationsrv.NewApplicationService(repos.apps, repos.jobs, c.FileSystem)
	c.LetterService = lettersrv.NewLetterService(
		repos.letters,
		repos.apps,
		repos.jobs,
		c.FileSystem,
		c.Dispatcher,
		c.Config.Email.CompanyName,
	)

	c.Reconciler = onboardingsrv.NewReconciler(
		repos.sessions,
		repos.onboardings,
		c.OnboardingService,
		locker,
		c.Config.Scheduling.ReconcileSpec,
	)

	// --- IAM ---
	// the interview service doubles as the assignment check for user deletion
	c.UserService = usersrv.NewUserService(repos.users, passwordSvc, c.InterviewService)

	if err := c.UserService.EnsureBootstrapAdmin(ctx, c.Config.Auth.Bootstrap); err != nil {
		logx.Fatalf("Failed to bootstrap admin user: %v", err)
	}

	// --- API Handlers ---
	c.AuthHandlers = auth.NewAuthHandlers(c.UserService, c.TokenService, c.Config.IsProd())
	c.UserHandlers = userapi.NewUserHandlers(c.UserService)
	c.JobHandlers = jobapi.NewJobHandlers(c.JobService)
	c.ApplicationHandlers = applicationapi.NewApplicationHandlers(c.ApplicationService)
	c.InterviewHandlers = interviewapi.NewInterviewHandlers(c.InterviewService)
	c.OnboardingHandlers = onboardingapi.NewOnboardingHandlers(c.OnboardingService, c.Reconciler)
	c.LetterHandlers = letterapi.NewLetterHandlers(c.LetterService)
	c.NotificationHandlers = notifxapi.NewNotificationHandlers(c.Dispatcher)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewAuthMiddleware(c.TokenService)

	logx.Info("✅ All services and handlers initialized")
}

// StartBackgroundServices starts background workers
func (c *Container) StartBackgroundServices(ctx context.Context) {
	logx.Info("🔄 Starting background services...")

	if err := c.Reconciler.Start(ctx); err != nil {
		logx.Fatalf("Failed to start onboarding reconciler: %v", err)
	}
}

// Ping checks every configured backend.
func (c *Container) Ping(ctx context.Context) map[string]error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	checks := make(map[string]error)
	if c.DB != nil {
		checks["postgres"] = c.DB.PingContext(ctx)
	}
	if c.Mongo != nil {
		checks["mongo"] = c.Mongo.Ping(ctx, nil)
	}
	if c.Redis != nil {
		checks["redis"] = c.Redis.Ping(ctx).Err()
	}
	return checks
}

// Cleanup stops workers and closes all connections
func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	if c.Reconciler != nil {
		c.Reconciler.Stop()
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("✅ Database connection closed")
		}
	}

	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Mongo.Disconnect(ctx); err != nil {
			logx.Errorf("Error closing MongoDB: %v", err)
		} else {
			logx.Info("✅ MongoDB connection closed")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup completed")
}
