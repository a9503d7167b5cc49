package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "Backend-TanyaPintar/docs"
	"Backend-TanyaPintar/src/config"
	"Backend-TanyaPintar/src/controllers"
	"Backend-TanyaPintar/src/database"
	"Backend-TanyaPintar/src/jobs"
	"Backend-TanyaPintar/src/routes"
	"Backend-TanyaPintar/src/services/ai"
	"Backend-TanyaPintar/src/services/auth"
	"Backend-TanyaPintar/src/services/classes"
	"Backend-TanyaPintar/src/services/email"
	"Backend-TanyaPintar/src/services/insights"
	"Backend-TanyaPintar/src/services/intake"
	"Backend-TanyaPintar/src/services/portal"
	"Backend-TanyaPintar/src/services/questions"
	"Backend-TanyaPintar/src/services/realtime"
	"Backend-TanyaPintar/src/services/reports"
	"Backend-TanyaPintar/src/services/settings"
	"Backend-TanyaPintar/src/services/submissions"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/logger"
)

// @title          TanyaPintar API
// @version        1.0
// @description    Student aspiration portal and admin dashboard
// @BasePath       /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	defer logger.Init("TanyaPintar", true, false, io.Discard).Close()

	conf := config.Get()
	loc := conf.Location()

	// เชื่อมต่อกับ MongoDB
	if err := database.ConnectMongoDB(conf.MongoURI, conf.MongoDB); err != nil {
		logger.Fatalf("Error connecting to the database: %v", err)
	}
	idxCtx, idxCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.EnsureIndexes(idxCtx); err != nil {
		logger.Warningf("⚠️ Failed to ensure indexes: %v", err)
	}
	idxCancel()

	// Redis ไม่บังคับ ถ้าต่อไม่ได้ระบบจะทำงานแบบ in-process
	if err := database.InitRedis(conf.RedisURI); err != nil {
		logger.Warningf("⚠️ Continuing without Redis: %v", err)
	}
	database.InitAsynq()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := realtime.NewHub(database.RedisClient)
	go hub.Run(ctx)

	// services
	queue := jobs.NewQueue(database.AsynqClient, database.RedisURI)
	classSvc := classes.NewService(database.ClassCollection, hub)
	questionSvc := questions.NewService(database.QuestionCollection, classSvc, hub, conf.FormCacheTTL)
	submissionSvc := submissions.NewService(database.SubmissionCollection, hub)
	settingsSvc := settings.NewService(database.SettingsCollection, queue, hub)
	queue.SetCloser(settingsSvc)

	model, err := ai.NewGeminiModel(ctx, conf.GeminiAPIKey)
	if err != nil {
		logger.Errorf("❌ AI disabled: %v", err)
	}
	aiSvc := ai.NewService(model, conf.SuggestModel, conf.AnalyzeModel)

	insightSvc := insights.NewService(insights.NewMongoStore(database.InsightCollection), aiSvc, submissionSvc, questionSvc, queue, hub)
	if sender, err := email.NewSMTPSender(conf); err == nil {
		mailTo := conf.InsightMailTo
		if mailTo == "" {
			mailTo = conf.AdminEmail
		}
		insightSvc.SetMailer(sender, mailTo)
		logger.Infof("✅ Insight reports will be mailed to %s", mailTo)
	} else {
		logger.Warningf("⚠️ Insight mail disabled: %v", err)
	}
	intakeSvc := intake.NewService(questionSvc, settingsSvc, classSvc, submissionSvc, hub)
	portalSvc := portal.NewService(settingsSvc, classSvc, questionSvc)
	reportSvc := reports.NewService(classSvc, questionSvc, submissionSvc)
	authSvc := auth.NewService(database.UserCollection)

	seedCtx, seedCancel := context.WithTimeout(ctx, 10*time.Second)
	if err := authSvc.SeedAdmin(seedCtx, conf.AdminEmail, conf.AdminPassword); err != nil {
		logger.Errorf("❌ Failed to seed admin: %v", err)
	}
	seedCancel()

	worker := jobs.StartWorker(database.RedisURI, insightSvc, settingsSvc)

	// สร้าง app instance
	app := fiber.New(fiber.Config{AppName: "TanyaPintar"})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New())

	// ✅ เปิดใช้งาน CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     conf.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false, // ❌ ต้องเป็น false ถ้าใช้ "*"
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// รวม routes จากแต่ละ module
	routes.InitRoutes(app, routes.Controllers{
		Portal:          controllers.NewPortalController(portalSvc, intakeSvc, hub, conf.LiveHeartbeat),
		Auth:            controllers.NewAuthController(authSvc),
		Class:           controllers.NewClassController(classSvc, conf.PortalURL),
		Question:        controllers.NewQuestionController(questionSvc, aiSvc),
		Submission:      controllers.NewSubmissionController(submissionSvc, questionSvc, loc),
		Report:          controllers.NewReportController(reportSvc, settingsSvc, hub, conf.LiveHeartbeat),
		Config:          controllers.NewConfigController(settingsSvc),
		Insight:         controllers.NewInsightController(insightSvc),
		SubmitRateLimit: conf.SubmitRateLimit,
	})

	go func() {
		<-ctx.Done()
		logger.Info("🛑 Shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Errorf("❌ HTTP shutdown: %v", err)
		}
	}()

	// เริ่มเซิร์ฟเวอร์
	logger.Infof("🚀 Server is running on port %s", conf.AppURI)
	if err := app.Listen(fmt.Sprintf(":%s", url.PathEscape(conf.AppURI))); err != nil {
		logger.Errorf("❌ Server stopped: %v", err)
	}

	if worker != nil {
		worker.Shutdown()
	}
	if database.AsynqClient != nil {
		_ = database.AsynqClient.Close()
	}
	closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCancel()
	if err := database.Disconnect(closeCtx); err != nil {
		logger.Errorf("❌ MongoDB disconnect: %v", err)
	}
}
