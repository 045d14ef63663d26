package database

import (
	"context"
	"log"
	"time"

	"skyward/config"

	"cloud.google.com/go/firestore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FirestoreClient is the global Firestore client (primary booking store).
var FirestoreClient *firestore.Client

// MongoClient is the global MongoDB client (mirror booking store).
var MongoClient *mongo.Client

// InitDB initializes both booking stores. Missing connection configuration
// for either store is fatal.
func InitDB() {
	initFirestore()
	initMongo()
}

func initFirestore() {
	projectID := config.AppConfig.FirestoreProjectID
	if projectID == "" {
		log.Fatal("FIRESTORE_PROJECT_ID is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		log.Fatalf("failed to create Firestore client: %v", err)
	}
	FirestoreClient = client
	log.Println("Connected to Firestore successfully!")
}

func initMongo() {
	if config.AppConfig.MongoURI == "" {
		log.Fatal("MONGO_URI is not configured")
	}
	if config.AppConfig.MongoDatabase == "" {
		log.Fatal("MONGO_DATABASE is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.MongoURI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to ping MongoDB: %v", err)
	}
	MongoClient = client
	log.Println("Connected to MongoDB successfully!")
}
