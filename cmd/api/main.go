package main

// @title MyDocs API
// @version 1.0
// @description Per-user document storage with typed documents.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	Execute()
}
