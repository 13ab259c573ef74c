package main

import (
	"flag"

	"chirper/crud"
	"chirper/database"
	"chirper/http"
)

// main is the app's entry point.
func main() {
	// Check if the flag "-prod" has been provided. It means that we're
	// running in production, where a .config.json file is required.
	productionBool := flag.Bool("prod", false, "Provide this flag in production to ensure that a .config.json file is provided before the application starts.")
	flag.Parse()

	// Load configuration from a .config.json file if present, otherwise use
	// the default dev setup.
	config := LoadConfig(*productionBool)

	// Open a database connection and execute migrations.
	db := database.NewDB(config.Database.ConnectionInfo())
	err := database.Open(db, config.IsProd())
	must(err)
	defer database.Close(db)
	err = database.AutoMigrate(db)
	must(err)

	// Start the crud services. The tweet and feed services depend on the
	// hashtag and follow services, so those come first.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithUser(config.Pepper, config.HMACKey),
		crud.WithHashtag(),
		crud.WithTweet(),
		crud.WithFollow(),
		crud.WithLike(),
		crud.WithFeed(),
	)
	must(err)

	// Set up a webserver.
	server := http.NewServer(config.IsProd(), config.CSRFAuthKey, services)

	// Serve the app.
	server.Run(config.Port)
}

// must is a little helper for shortening the panic instruction.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
