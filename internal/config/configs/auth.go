package configs

// Auth configures bearer token verification. Tokens are HS256 JWTs whose
// subject is the numeric user id.
type Auth struct {
	Secret string `env:"JWT_SECRET,required,notEmpty"`
	Issuer string `env:"JWT_ISSUER" envDefault:"trxclicker"`
}
