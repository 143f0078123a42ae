package configs

// Mongo configures the MongoDB record store used when STORE_DRIVER=mongo.
type Mongo struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"trxclicker"`
}
