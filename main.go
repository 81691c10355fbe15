package main

import "blogapi/cmd"

// @title Blog API
// @version 1.0
// @description Posts with a draft/published lifecycle, comments and JWT authentication.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cmd.Execute()
}
