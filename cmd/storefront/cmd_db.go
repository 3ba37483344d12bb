package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/storefront/internal/catalog"
	"github.com/Skotchmaster/storefront/internal/schema"
)

// storefront migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		if err := schema.Migrate(cmd.Context(), rt.db); err != nil {
			return err
		}
		rt.logger.Info("migrate_success")
		return nil
	},
}

var seedIndex bool

// storefront seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace categories and products with the built-in catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := boot(ctx)
		if err != nil {
			return err
		}
		defer rt.close()

		if err := schema.Migrate(ctx, rt.db); err != nil {
			return err
		}
		rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
		res, err := catalog.Seed(ctx, rt.db, rng)
		if err != nil {
			return err
		}
		repo := catalog.NewGormRepo(rt.db)
		stored, err := repo.CountProducts(ctx)
		if err != nil {
			return err
		}
		rt.logger.Info("seed_success", "categories", len(res.Categories), "products", stored)

		if !seedIndex {
			return nil
		}
		if rt.cfg.ESURL == "" {
			return fmt.Errorf("--index needs ES_URL")
		}
		products, err := repo.ListProducts(ctx)
		if err != nil {
			return err
		}
		return indexProducts(ctx, rt, products)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedIndex, "index", false, "also index the seeded products into Elasticsearch")
}

func indexProducts(ctx context.Context, rt *app, products []catalog.Product) error {
	client, err := catalog.NewESClient(ctx, esConfig(rt))
	if err != nil {
		return err
	}
	lookup := catalog.NewESLookup(client, rt.cfg.ESProductIndex)
	if err := lookup.IndexProducts(ctx, products); err != nil {
		return err
	}
	rt.logger.Info("index_success", "index", lookup.Index, "products", len(products))
	return nil
}

func esConfig(rt *app) catalog.ESConfig {
	return catalog.ESConfig{
		URL:      rt.cfg.ESURL,
		User:     rt.cfg.ESUser,
		Password: rt.cfg.ESPassword,
		Index:    rt.cfg.ESProductIndex,
	}
}
