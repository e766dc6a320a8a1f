// cmd/mercadoctl/main.go — catalog client CLI. Runs the product submission
// workflow (validate → upload image → create record) against a running
// backend, or lists categories for the category selector.
//
// Usage:
//
//	mercadoctl categories -api http://localhost:8000
//	mercadoctl submit -api http://localhost:8000 -token $TOKEN \
//	    -name "Feijão Carioca 1kg" -type kilogram -price 12.90 \
//	    -category <uuid> -barcode 7891234567890 -image ./feijao.jpg
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/JuniorCesarMarques/ecommerce/internal/config"
	"github.com/JuniorCesarMarques/ecommerce/internal/infra"
	"github.com/JuniorCesarMarques/ecommerce/internal/submission"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "categories":
		runCategories(os.Args[2:])
	case "submit":
		runSubmit(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: mercadoctl <categories|submit> [flags]")
}

func runCategories(args []string) {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	api := fs.String("api", "http://localhost:8000", "backend base URL")
	_ = fs.Parse(args)

	client := submission.NewAPIClient(*api, "")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	categories, err := client.FetchCategories(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to fetch categories")
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	for _, c := range categories {
		fmt.Printf("%s\t%s\n", c.ID, c.Name)
	}
}

func runSubmit(args []string) {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	api := fs.String("api", "http://localhost:8000", "backend base URL")
	token := fs.String("token", os.Getenv("CATALOG_TOKEN"), "bearer token (ADMIN)")
	name := fs.String("name", "", "product name")
	packaging := fs.String("type", "", "packaging type (unit|box|package|kilogram|liter)")
	description := fs.String("description", "", "product description")
	price := fs.String("price", "", "price, e.g. 12.90")
	categoryID := fs.String("category", "", "category id")
	barcode := fs.String("barcode", "", "product barcode")
	imagePath := fs.String("image", "", "path to the product image")
	_ = fs.Parse(args)

	// Bucket settings come from the environment, same as the server.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	storage, err := infra.NewObjectStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to object storage")
	}

	input := submission.Input{
		Name:          *name,
		PackagingType: *packaging,
		Description:   *description,
		PriceText:     *price,
		CategoryID:    *categoryID,
		Barcode:       *barcode,
	}
	if *imagePath != "" {
		img, err := imageFromPath(*imagePath)
		if err != nil {
			log.Fatal().Err(err).Str("image", *imagePath).Msg("cannot read image")
		}
		input.Image = img
	}

	client := submission.NewAPIClient(*api, *token)
	workflow := submission.NewWorkflow(submission.NewBucketUploader(storage), client)
	workflow.OnSuccess = func() {
		fmt.Println("product created — see the catalog listing")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	outcome, err := workflow.Submit(ctx, input)
	if err != nil {
		var vf *submission.ValidationFailed
		if errors.As(err, &vf) {
			for field, msg := range vf.Fields {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
			}
			os.Exit(1)
		}
		var wf *submission.WorkflowError
		if errors.As(err, &wf) {
			log.Fatal().Err(wf.Err).Str("stage", wf.Stage).Msg("submission failed")
		}
		log.Fatal().Err(err).Msg("submission failed")
	}
	fmt.Printf("image: %s\n", outcome.ImageURL)
}

func imageFromPath(path string) (*submission.ImageFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &submission.ImageFile{
		Name: info.Name(),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}
