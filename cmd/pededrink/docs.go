package main

// @title PedeDrink API
// @version 1.0
// @description Inventory and sales API for a beverage distributor, with logging, tracing and metrics
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/tair/pededrink
// @contact.email support@pededrink.com

// @license.name MIT
// @license.url https://github.com/tair/pededrink/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Login, registration and token endpoints

// @tag.name Admin
// @tag.description Account management (admin only)

// @tag.name Products
// @tag.description Product catalog and stock corrections

// @tag.name Sales
// @tag.description Sales ledger, rankings and exports

// @tag.name Reports
// @tag.description Dashboard and period reports

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
