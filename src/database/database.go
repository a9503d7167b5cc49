package database

import (
	"context"
	"sync"
	"time"

	"github.com/google/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client     *mongo.Client
	DB         *mongo.Database
	once       sync.Once // ✅ ป้องกันการรัน ConnectMongoDB() ซ้ำ
	connectErr error

	ClassCollection      *mongo.Collection
	QuestionCollection   *mongo.Collection
	SubmissionCollection *mongo.Collection
	SettingsCollection   *mongo.Collection
	InsightCollection    *mongo.Collection
	UserCollection       *mongo.Collection
)

// ConnectMongoDB เชื่อมต่อกับ MongoDB แค่ครั้งเดียว
func ConnectMongoDB(mongoURI, dbName string) error {
	once.Do(func() { // ✅ Run only once
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		clientOptions := options.Client().ApplyURI(mongoURI)
		client, connectErr = mongo.Connect(ctx, clientOptions)
		if connectErr != nil {
			logger.Errorf("❌ Failed to connect to MongoDB: %v", connectErr)
			return
		}

		// ตรวจสอบการเชื่อมต่อ
		connectErr = client.Ping(ctx, readpref.Primary())
		if connectErr != nil {
			logger.Errorf("❌ MongoDB ping failed: %v", connectErr)
			return
		}

		DB = client.Database(dbName)
		ClassCollection = DB.Collection("classes")
		QuestionCollection = DB.Collection("questions")
		SubmissionCollection = DB.Collection("submissions")
		SettingsCollection = DB.Collection("settings")
		InsightCollection = DB.Collection("insights")
		UserCollection = DB.Collection("users")

		logger.Infof("✅ MongoDB connected successfully (db=%s)", dbName)
	})

	return connectErr
}

// EnsureIndexes สร้าง index ที่ query ใช้บ่อย (รันซ้ำได้)
func EnsureIndexes(ctx context.Context) error {
	if DB == nil {
		return mongo.ErrClientDisconnected
	}

	indexes := map[*mongo.Collection][]mongo.IndexModel{
		ClassCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		QuestionCollection: {
			{Keys: bson.D{{Key: "active", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		SubmissionCollection: {
			{Keys: bson.D{{Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "className", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
		InsightCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		UserCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for col, models := range indexes {
		if _, err := col.Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	logger.Info("✅ MongoDB indexes ensured")
	return nil
}

// Disconnect ปิดการเชื่อมต่อตอน shutdown
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
