// Package mongo provides connection helpers for running the durable
// notification store on MongoDB.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "notifyq")
//	if err != nil {
//	    return err
//	}
//
//	storage := notify.NewMongoStorage(db)
package mongo
