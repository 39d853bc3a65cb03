package db

import (
	"context"
	"time"

	"rongchapa/globals"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client               *mongo.Client
	UserCollection       *mongo.Collection
	ProductCollection    *mongo.Collection
	CategoryCollection   *mongo.Collection
	OrderCollection      *mongo.Collection
	PrintOrderCollection *mongo.Collection
)

// Init connects to MongoDB and binds the shared collection handles.
func Init(cfg *globals.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	Client = client
	database := client.Database(cfg.MongoDB)
	UserCollection = database.Collection("users")
	ProductCollection = database.Collection("products")
	CategoryCollection = database.Collection("categories")
	OrderCollection = database.Collection("orders")
	PrintOrderCollection = database.Collection("printorders")
	return nil
}
