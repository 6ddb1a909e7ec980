package main

import (
	"fmt"
	"os"

	"github.com/jangheelee880707/wooahhan/config"
	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/internal/app/repository"
	"github.com/jangheelee880707/wooahhan/internal/catalog"
	"github.com/jangheelee880707/wooahhan/internal/db"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Manage the WOO-AH-HAN product catalog",
}

var assumeYes bool

func init() {
	importCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(defaultsCmd)
}

// bootDB loads config and opens the database connection.
func bootDB() (repository.ProductRepository, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := db.Initialize(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return repository.NewProductRepository(db.GetDB()), nil
}

// seed import <xlsx_file_path>
var importCmd = &cobra.Command{
	Use:   "import <xlsx_file_path>",
	Short: "Upsert products from an XLSX workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		// XLSX 파일 읽기
		fmt.Printf("Reading XLSX file: %s\n", filePath)
		f, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("failed to open XLSX file: %w", err)
		}
		defer f.Close()

		products, err := catalog.ReadXLSX(f)
		if err != nil {
			return err
		}
		fmt.Printf("Total products to import: %d\n", len(products))

		// 사용자 확인
		if !assumeYes {
			fmt.Print("Do you want to proceed with the import? (yes/no): ")
			var confirm string
			fmt.Scanln(&confirm)
			if confirm != "yes" && confirm != "y" {
				fmt.Println("Import cancelled.")
				return nil
			}
		}

		productRepo, err := bootDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := productRepo.Upsert(products); err != nil {
			return fmt.Errorf("failed to upsert products: %w", err)
		}

		fmt.Println("Import completed successfully!")
		return nil
	},
}

// seed export <xlsx_file_path>
var exportCmd = &cobra.Command{
	Use:   "export <xlsx_file_path>",
	Short: "Write the current catalog to an XLSX workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productRepo, err := bootDB()
		if err != nil {
			return err
		}
		defer db.Close()

		products, err := productRepo.FindAll(model.CategoryAll)
		if err != nil {
			return fmt.Errorf("failed to load products: %w", err)
		}

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create XLSX file: %w", err)
		}
		defer f.Close()

		if err := catalog.WriteXLSX(f, products); err != nil {
			return err
		}

		fmt.Printf("Exported %d products to %s\n", len(products), args[0])
		return nil
	},
}

// seed defaults
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Restore the built-in catalog (p1-p6)",
	RunE: func(cmd *cobra.Command, args []string) error {
		productRepo, err := bootDB()
		if err != nil {
			return err
		}
		defer db.Close()

		products, err := catalog.Default()
		if err != nil {
			return err
		}
		if err := productRepo.Upsert(products); err != nil {
			return fmt.Errorf("failed to upsert products: %w", err)
		}

		fmt.Printf("Restored %d default products\n", len(products))
		return nil
	},
}
