package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/scanexplorer/internal/domain/search/compose"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/dsl"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/field"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/order"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/request"
)

func compileCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "Print the search engine body for a query without running it",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "entity",
				Usage: "collection, article or page",
				Value: "page",
			},
			&cli.IntFlag{
				Name:  "page",
				Value: request.DefaultPage,
			},
			&cli.IntFlag{
				Name:  "limit",
				Value: request.DefaultLimit,
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "relevance_desc, relevance_asc, bibcode_desc, bibcode_asc, collection_desc or collection_asc",
			},
			&cli.IntFlag{
				Name:  "bucket-ceiling",
				Value: compose.DefaultBucketCeiling,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			raw := strings.Join(c.Args().Slice(), " ")
			body, err := compileBody(c.String("entity"), raw, c.Int("page"), c.Int("limit"),
				c.String("sort"), c.Int("bucket-ceiling"))
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(body, "", "  ")
			if err != nil {
				return fmt.Errorf("encode body: %w", err)
			}
			_, err = fmt.Fprintln(c.Root().Writer, string(out))
			return err
		},
	}
}

func compileBody(entity, raw string, page, limit int, sort string, ceiling int) (dsl.Body, error) {
	req, err := request.New(raw, page, limit, order.Parse(sort))
	if err != nil {
		return nil, err
	}
	c := compose.New(field.NewTable(), ceiling)
	switch entity {
	case "collection":
		return c.Grouped(&req, compose.ByCollection), nil
	case "article":
		return c.Grouped(&req, compose.ByArticle), nil
	case "page":
		return c.Listing(&req), nil
	default:
		return nil, fmt.Errorf("unknown entity %q, valid entities are collection, article, page", entity)
	}
}
