package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/saulo-duarte/coursehub-lambda/internal/container"
	"github.com/saulo-duarte/coursehub-lambda/internal/router"
)

func main() {
	c := container.New()
	adapter := httpadapter.NewV2(router.New(c.RouterConfig()))
	lambda.Start(adapter.ProxyWithContext)
}
