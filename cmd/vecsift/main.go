package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sync"

	gojson "github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vecsift/vecsift"
	"github.com/vecsift/vecsift/blobstore"
	miniostore "github.com/vecsift/vecsift/blobstore/minio"
	"github.com/vecsift/vecsift/codec"
	"github.com/vecsift/vecsift/export"
	"github.com/vecsift/vecsift/metadata"
	"github.com/vecsift/vecsift/model"
	"github.com/vecsift/vecsift/profile"
	"github.com/vecsift/vecsift/sample"
	"github.com/vecsift/vecsift/store"
)

var (
	dbPath  string
	verbose bool
	logJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "vecsift",
	Short: "Profile and curate embedding collections for edge export",
	Long: `vecsift inspects a SQLite collection of embedding records, reports
data-quality findings, and curates a bounded, deduplicated export subset.`,
}

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List collections in the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		infos, err := s.ListCollections(cmd.Context())
		if err != nil {
			return err
		}
		for _, info := range infos {
			fmt.Printf("%s\t%d\n", info.Name, info.Count)
		}
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile [collection]",
	Short: "Profile a collection and print the report as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) != 1 {
			return fmt.Errorf("collection name required unless --all is set")
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		lg := newLogger()

		if !all {
			batch, err := s.FetchAll(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			prof, _ := profile.Run(batch)
			lg.WithCollection(args[0]).WithCount(prof.NumRecords).DebugContext(cmd.Context(), "profiled collection")
			return printJSON(prof)
		}

		infos, err := s.ListCollections(cmd.Context())
		if err != nil {
			return err
		}

		profiles := make(map[string]*profile.Profile, len(infos))
		var mu sync.Mutex
		g, ctx := errgroup.WithContext(cmd.Context())
		for _, info := range infos {
			g.Go(func() error {
				batch, err := s.FetchAll(ctx, info.Name)
				if err != nil {
					return err
				}
				prof, _ := profile.Run(batch)
				lg.WithCollection(info.Name).WithCount(prof.NumRecords).DebugContext(ctx, "profiled collection")
				mu.Lock()
				profiles[info.Name] = prof
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		return printJSON(profiles)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <collection>",
	Short: "Curate a collection and write export artifacts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cap, _ := cmd.Flags().GetInt("cap")
		keyFields, _ := cmd.Flags().GetStringSlice("key-fields")
		dateField, _ := cmd.Flags().GetString("date-field")
		out, _ := cmd.Flags().GetString("out")
		profileOut, _ := cmd.Flags().GetString("profile-out")

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		batch, err := s.FetchAll(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		opts := []vecsift.Option{
			vecsift.WithLogger(newLogger().WithCollection(args[0])),
			vecsift.WithCap(cap),
			vecsift.WithDateField(dateField),
		}
		if len(keyFields) > 0 {
			opts = append(opts, vecsift.WithKeyFields(keyFields...))
		}

		p := vecsift.New(opts...)
		res, err := p.Run(cmd.Context(), batch)
		if err != nil {
			return err
		}

		writerOpts := []export.WriterOption{export.WithCodec(codec.Default)}
		if bs, err := minioStore(cmd); err != nil {
			return err
		} else if bs != nil {
			writerOpts = append(writerOpts, export.WithBlobStore(bs))
		}
		w := export.NewWriter(writerOpts...)

		if err := w.WriteFile(cmd.Context(), out, res.Export); err != nil {
			return err
		}
		if profileOut != "" {
			if err := w.WriteFile(cmd.Context(), profileOut, res.Profile); err != nil {
				return err
			}
		}

		fmt.Printf("Exported %d of %d records to %s\n", len(res.Export), res.Profile.NumRecords, out)
		return nil
	},
}

var loadCmd = &cobra.Command{
	Use:   "load <collection>",
	Short: "Load records from a JSON file into a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("in")

		data, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		var raw []struct {
			ID       string         `json:"id"`
			Vector   []float32      `json:"vector"`
			Metadata map[string]any `json:"metadata"`
			Document string         `json:"document"`
		}
		if err := codec.Default.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("invalid input JSON: %w", err)
		}

		recs := make([]model.Record, 0, len(raw))
		for _, r := range raw {
			doc, err := metadata.DocumentFromAny(r.Metadata)
			if err != nil {
				return fmt.Errorf("record %q: %w", r.ID, err)
			}
			recs = append(recs, model.Record{
				ID:       r.ID,
				Vector:   r.Vector,
				Metadata: doc,
				Document: r.Document,
			})
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.CreateCollection(cmd.Context(), args[0]); err != nil {
			return err
		}
		if err := s.Insert(cmd.Context(), args[0], recs...); err != nil {
			return err
		}

		fmt.Printf("Loaded %d records into %s\n", len(recs), args[0])
		return nil
	},
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Sample a deterministic fixture from an export file",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("in")
		out, _ := cmd.Flags().GetString("out")
		size, _ := cmd.Flags().GetInt("size")
		seed, _ := cmd.Flags().GetInt64("seed")

		if err := sample.FromFile(in, out, size, seed); err != nil {
			return err
		}
		fmt.Printf("Sampled %d records to %s\n", size, out)
		return nil
	},
}

func openStore(ctx context.Context) (*store.Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path not specified")
	}
	return store.Open(ctx, dbPath)
}

func minioStore(cmd *cobra.Command) (blobstore.Store, error) {
	endpoint, _ := cmd.Flags().GetString("minio-endpoint")
	if endpoint == "" {
		return nil, nil
	}
	bucket, _ := cmd.Flags().GetString("minio-bucket")
	accessKey, _ := cmd.Flags().GetString("minio-access-key")
	secretKey, _ := cmd.Flags().GetString("minio-secret-key")
	prefix, _ := cmd.Flags().GetString("minio-prefix")

	if bucket == "" {
		return nil, fmt.Errorf("minio bucket required when endpoint is set")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to minio: %w", err)
	}
	return miniostore.NewStore(client, bucket, prefix), nil
}

func newLogger() *vecsift.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if logJSON {
		return vecsift.NewJSONLogger(level)
	}
	return vecsift.NewTextLogger(level)
}

func printJSON(v any) error {
	data, err := gojson.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "vectors.db", "Database file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")

	profileCmd.Flags().Bool("all", false, "Profile every collection concurrently")

	exportCmd.Flags().Int("cap", 2048, "Maximum records in the export")
	exportCmd.Flags().StringSlice("key-fields", nil, "Metadata fields to project (default: built-in key set)")
	exportCmd.Flags().String("date-field", "published", "Metadata field used for recency ranking")
	exportCmd.Flags().String("out", "export_for_edge.json", "Export output path")
	exportCmd.Flags().String("profile-out", "", "Optional profile report output path")
	exportCmd.Flags().String("minio-endpoint", "", "MinIO endpoint for artifact mirroring")
	exportCmd.Flags().String("minio-bucket", "", "MinIO bucket")
	exportCmd.Flags().String("minio-access-key", "", "MinIO access key")
	exportCmd.Flags().String("minio-secret-key", "", "MinIO secret key")
	exportCmd.Flags().String("minio-prefix", "", "Key prefix inside the bucket")

	loadCmd.Flags().String("in", "records.json", "Input JSON file of records")

	sampleCmd.Flags().String("in", "export_for_edge.json", "Input export file")
	sampleCmd.Flags().String("out", "tests/test_vectors.json", "Fixture output path")
	sampleCmd.Flags().Int("size", sample.DefaultSize, "Number of records to sample")
	sampleCmd.Flags().Int64("seed", 42, "Deterministic sampling seed")

	rootCmd.AddCommand(
		collectionsCmd,
		profileCmd,
		exportCmd,
		loadCmd,
		sampleCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
