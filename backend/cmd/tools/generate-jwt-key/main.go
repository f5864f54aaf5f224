package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/studyhub-dev/studyhub/shared/utils"
)

func main() {
	size := flag.Int("bytes", 32, "number of random bytes in the key")
	flag.Parse()

	key, err := utils.GenerateSecret(*size)
	if err != nil {
		log.Fatalf("Failed to generate jwt key: %v", err)
	}

	fmt.Println("=================================================")
	fmt.Println("  JWT signing key (HS256)")
	fmt.Println("=================================================")
	fmt.Println()
	fmt.Println("Generated key (base64):")
	fmt.Println(key)
	fmt.Println()
	fmt.Println("Add this to your config/private.yaml:")
	fmt.Printf("jwt_key: \"%s\"\n", key)
	fmt.Println()
	fmt.Println("Or export it instead:")
	fmt.Printf("export JWT_SECRET_KEY=\"%s\"\n", key)
	fmt.Println("=================================================")
}
