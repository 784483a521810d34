// Package config loads simplemovies configuration with viper.
//
// Values are layered: config.yml, then a .env file read through godotenv,
// then process environment variables carrying the service prefix.
//
//	var cfg bootstrap.AppConfig
//	err := config.LoadConfig("simplemovies", &cfg, config.WithConfigFile(path))
//
// SIMPLEMOVIES_OMDB_API_KEY=xyz sets omdb.api_key.
package config
