package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/leonelcastillo/Tx/pkg/models"
	"github.com/leonelcastillo/Tx/pkg/storage/sqlite"
)

var csvHeader = []string{
	"id", "name", "phone", "wallet", "weight_kg", "address", "photo",
	"date", "status", "collected_weight_kg", "collected_photo", "collected_at",
}

func openStore(c *cli.Context) (*sqlite.Store, error) {
	return sqlite.Open(c.String("db"))
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Upgrade the database schema in place (idempotent)",
		Action: func(c *cli.Context) error {
			store, err := openStore(c)
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := store.Migrate(context.Background())
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			if len(res.AddedColumns) == 0 && !res.Rebuilt {
				fmt.Println("schema already up to date")
				return nil
			}
			fmt.Printf("added columns: %v, rebuilt: %v\n", res.AddedColumns, res.Rebuilt)
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write every transaction, collection outcome included, as CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Usage: "output file (default stdout)"},
		},
		Action: func(c *cli.Context) error {
			store, err := openStore(c)
			if err != nil {
				return err
			}
			defer store.Close()

			var out io.Writer = os.Stdout
			if path := c.String("out"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			txs, err := store.ListTransactions(context.Background(), 0, 0)
			if err != nil {
				return err
			}

			cw := csv.NewWriter(out)
			defer cw.Flush()
			if err := cw.Write(csvHeader); err != nil {
				return err
			}
			for _, tx := range txs {
				if err := cw.Write(exportRecord(&tx)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Restore transactions from a CSV export, preserving ids",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Usage: "input CSV file", Required: true},
		},
		Action: func(c *cli.Context) error {
			store, err := openStore(c)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, err := store.Migrate(context.Background()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			f, err := os.Open(c.String("in"))
			if err != nil {
				return err
			}
			defer f.Close()

			cr := csv.NewReader(f)
			if _, err := cr.Read(); err != nil { // header
				return fmt.Errorf("failed to read CSV header: %w", err)
			}

			var count int
			for {
				record, err := cr.Read()
				if err == io.EOF {
					break
				}
				if err != nil {
					return fmt.Errorf("failed to read CSV record: %w", err)
				}
				tx, err := importRecord(record)
				if err != nil {
					return fmt.Errorf("bad record %v: %w", record, err)
				}
				if err := store.ImportTransaction(context.Background(), tx); err != nil {
					return err
				}
				count++
			}
			fmt.Printf("imported %d transactions\n", count)
			return nil
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Print total collected kilograms and transaction count",
		Action: func(c *cli.Context) error {
			store, err := openStore(c)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("total_kg=%g total_count=%d\n", stats.TotalKg, stats.TotalCount)
			return nil
		},
	}
}

func exportRecord(tx *models.Transaction) []string {
	return []string{
		strconv.FormatInt(tx.Id, 10),
		tx.Name,
		deref(tx.Phone),
		deref(tx.Wallet),
		derefFloat(tx.WeightKg),
		deref(tx.Address),
		deref(tx.Photo),
		tx.Date.Format(time.RFC3339),
		string(tx.Status),
		derefFloat(tx.CollectedWeightKg),
		deref(tx.CollectedPhoto),
		derefTime(tx.CollectedAt),
	}
}

func importRecord(record []string) (*models.Transaction, error) {
	if len(record) != len(csvHeader) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(csvHeader), len(record))
	}

	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad id: %w", err)
	}
	date, err := time.Parse(time.RFC3339, record[7])
	if err != nil {
		return nil, fmt.Errorf("bad date: %w", err)
	}
	weight, err := optionalFloat(record[4])
	if err != nil {
		return nil, fmt.Errorf("bad weight_kg: %w", err)
	}
	collectedWeight, err := optionalFloat(record[9])
	if err != nil {
		return nil, fmt.Errorf("bad collected_weight_kg: %w", err)
	}
	collectedAt, err := optionalTime(record[11])
	if err != nil {
		return nil, fmt.Errorf("bad collected_at: %w", err)
	}

	return &models.Transaction{
		Id:                id,
		Name:              record[1],
		Phone:             optionalString(record[2]),
		Wallet:            optionalString(record[3]),
		WeightKg:          weight,
		Address:           optionalString(record[5]),
		Photo:             optionalString(record[6]),
		Date:              date,
		Status:            models.TransactionStatus(record[8]),
		CollectedWeightKg: collectedWeight,
		CollectedPhoto:    optionalString(record[10]),
		CollectedAt:       collectedAt,
	}, nil
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func derefTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(time.RFC3339)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func optionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
