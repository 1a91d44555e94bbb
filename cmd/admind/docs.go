package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           admind API
// @version         1.0
// @description     HTTP API for medical-records admin console orchestration.
//
// @contact.name   admind maintainers
// @contact.url    https://github.com/your-org/admind
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
