package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/spacesedan/evalflow/internal/analytics"
	"github.com/spacesedan/evalflow/internal/clients"
	"github.com/spacesedan/evalflow/internal/db"
	"github.com/spacesedan/evalflow/internal/models"
	"github.com/spacesedan/evalflow/internal/report"
	"github.com/spacesedan/evalflow/internal/session"
)

// evaluationFlags are shared by every evaluations subcommand.
type evaluationFlags struct {
	file     string
	programs []string
}

// evalHandler receives the records already narrowed to the session's programs.
type evalHandler func(ctx context.Context, cmd *cobra.Command, sess *session.Session, records []models.RecodedRecord) error

func newEvaluationsCmd(a *app) *cobra.Command {
	f := &evaluationFlags{}
	cmd := &cobra.Command{
		Use:     "evaluations",
		Aliases: []string{"eval"},
		Short:   "Summarize a student evaluation sheet",
	}
	cmd.PersistentFlags().StringVarP(&f.file, "file", "f", "", "evaluation sheet (.csv or .xlsx); defaults to EVAL_DATA_PATH")
	cmd.PersistentFlags().StringSliceVarP(&f.programs, "program", "p", nil, "only include these programs")

	cmd.AddCommand(
		newSummaryCmd(a, f),
		newDistributionCmd(a, f),
		newSentimentCmd(a, f),
		newCrossTabCmd(a, f),
		newCompareCmd(a, f),
		newWordsCmd(a, f),
		newStudentsCmd(a, f),
		newStudentCmd(a, f),
		newExportCmd(a, f),
	)
	return cmd
}

// runEval loads the sheet, starts a session from the flags and hands both to h.
func runEval(a *app, f *evaluationFlags, configure func(*session.Session, []string) error, h evalHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sess := session.New()
		sess.Programs = f.programs
		if configure != nil {
			if err := configure(sess, args); err != nil {
				return err
			}
		}

		path := f.file
		if path == "" {
			path = a.settings.EvalDataPath
		}
		records, err := a.loadEvaluations(ctx, path)
		if err != nil {
			return err
		}
		return h(ctx, cmd, sess, sess.SelectedRecords(records))
	}
}

type summaryOutput struct {
	Records   int                                    `json:"records"`
	Programs  []string                               `json:"programs"`
	Stats     [models.ResultFields]models.ScoreStats `json:"stats"`
	Sentiment models.SentimentSummary                `json:"sentiment"`
}

func newSummaryCmd(a *app, f *evaluationFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Descriptive statistics of the numeric results",
		Args:  cobra.NoArgs,
		RunE: runEval(a, f, nil, func(_ context.Context, cmd *cobra.Command, _ *session.Session, records []models.RecodedRecord) error {
			out := summaryOutput{
				Records:   len(records),
				Programs:  analytics.Programs(records),
				Stats:     analytics.DescribeResults(records),
				Sentiment: analytics.SentimentCounts(records),
			}
			return a.render(cmd, out, func(w io.Writer) {
				report.Title(w, "%d records, programs: %v", out.Records, out.Programs)
				report.ScoreStats(w, out.Stats)
				report.Note(w, "Tagged observations: %d positive, %d negative",
					out.Sentiment.Positive, out.Sentiment.Negative)
			})
		}),
	}
}

// fieldIndex turns a 1-based result column number into an index.
func fieldIndex(field int) (int, error) {
	if field < 1 || field > models.ResultFields {
		return 0, fmt.Errorf("[CLI] --field must be between 1 and %d, got %d", models.ResultFields, field)
	}
	return field - 1, nil
}

func newDistributionCmd(a *app, f *evaluationFlags) *cobra.Command {
	var field int
	cmd := &cobra.Command{
		Use:   "distribution",
		Short: "Count the labels of one result column",
		Args:  cobra.NoArgs,
		RunE: runEval(a, f, nil, func(_ context.Context, cmd *cobra.Command, _ *session.Session, records []models.RecodedRecord) error {
			i, err := fieldIndex(field)
			if err != nil {
				return err
			}
			counts := analytics.LabelDistribution(records, i)
			return a.render(cmd, counts, func(w io.Writer) {
				report.Distribution(w, models.ResultColumns[i], counts)
			})
		}),
	}
	cmd.Flags().IntVar(&field, "field", 1, "result column (1-3)")
	return cmd
}

type sentimentOutput struct {
	Summary models.SentimentSummary  `json:"summary"`
	ByField []models.FieldComparison `json:"by_field"`
	Lexical models.LexicalAgreement  `json:"lexical"`
}

func newSentimentCmd(a *app, f *evaluationFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sentiment",
		Short: "Positive and negative observation counts",
		Args:  cobra.NoArgs,
		RunE: runEval(a, f, nil, func(_ context.Context, cmd *cobra.Command, _ *session.Session, records []models.RecodedRecord) error {
			out := sentimentOutput{
				Summary: analytics.SentimentCounts(records),
				ByField: analytics.CompareSentiment(records),
				Lexical: analytics.CompareLexical(records),
			}
			return a.render(cmd, out, func(w io.Writer) {
				report.Sentiment(w, out.Summary, out.Lexical)
				report.Comparison(w, "Tags per observation column", out.ByField,
					[]string{string(models.SentimentPositive), string(models.SentimentNegative)})
			})
		}),
	}
}

func newCrossTabCmd(a *app, f *evaluationFlags) *cobra.Command {
	var field int
	cmd := &cobra.Command{
		Use:   "crosstab",
		Short: "Cross a result column with the sentiment of its observation",
		Args:  cobra.NoArgs,
		RunE: runEval(a, f, nil, func(_ context.Context, cmd *cobra.Command, _ *session.Session, records []models.RecodedRecord) error {
			i, err := fieldIndex(field)
			if err != nil {
				return err
			}
			rows := analytics.CrossTab(records, i)
			return a.render(cmd, rows, func(w io.Writer) {
				report.CrossTab(w, models.ResultColumns[i], rows)
			})
		}),
	}
	cmd.Flags().IntVar(&field, "field", 1, "result column (1-3)")
	return cmd
}

func newCompareCmd(a *app, f *evaluationFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare label counts across the three result columns",
		Args:  cobra.NoArgs,
		RunE: runEval(a, f, nil, func(_ context.Context, cmd *cobra.Command, _ *session.Session, records []models.RecodedRecord) error {
			fields := analytics.CompareResults(records)
			return a.render(cmd, fields, func(w io.Writer) {
				report.Comparison(w, "Labels per result column", fields, labelKeys(fields))
			})
		}),
	}
}

// labelKeys lists the scale labels first, then any other label seen.
func labelKeys(fields []models.FieldComparison) []string {
	keys := append([]string(nil), models.LabelOrder...)
	known := make(map[string]bool, len(keys))
	for _, k := range keys {
		known[k] = true
	}
	var extra []string
	for _, f := range fields {
		for k := range f.Counts {
			if !known[k] {
				known[k] = true
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func newWordsCmd(a *app, f *evaluationFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Most frequent words in the observations",
		Args:  cobra.NoArgs,
		RunE: runEval(a, f, func(s *session.Session, _ []string) error {
			s.WordLimit = limit
			return nil
		}, func(_ context.Context, cmd *cobra.Command, sess *session.Session, records []models.RecodedRecord) error {
			words := analytics.WordFrequencies(analytics.ObservationTexts(records), sess.WordLimit)
			return a.render(cmd, words, func(w io.Writer) {
				report.Words(w, words)
			})
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", session.DefaultWordLimit, "number of words to show, 0 for all")
	return cmd
}

func newStudentsCmd(a *app, f *evaluationFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "students",
		Short: "List the students in the sheet",
		Args:  cobra.NoArgs,
		RunE: runEval(a, f, nil, func(_ context.Context, cmd *cobra.Command, _ *session.Session, records []models.RecodedRecord) error {
			students := analytics.Students(records)
			return a.render(cmd, students, func(w io.Writer) {
				for _, s := range students {
					fmt.Fprintln(w, s)
				}
			})
		}),
	}
}

func newStudentCmd(a *app, f *evaluationFlags) *cobra.Command {
	return &cobra.Command{
		Use:   `student "<name - email>"`,
		Short: "Show the results and observations of one student",
		Args:  cobra.ExactArgs(1),
		RunE: runEval(a, f, func(s *session.Session, args []string) error {
			s.Student = args[0]
			return nil
		}, func(_ context.Context, cmd *cobra.Command, sess *session.Session, records []models.RecodedRecord) error {
			rec, err := sess.SelectedStudent(records)
			if err != nil {
				return err
			}
			return a.render(cmd, rec, func(w io.Writer) {
				report.Student(w, rec)
			})
		}),
	}
}

func newExportCmd(a *app, f *evaluationFlags) *cobra.Command {
	var table string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the recoded records to DynamoDB",
		Args:  cobra.NoArgs,
		RunE: runEval(a, f, nil, func(ctx context.Context, cmd *cobra.Command, _ *session.Session, records []models.RecodedRecord) error {
			client, err := clients.NewDynamoDBClient(ctx, clients.AWSOptions{
				Region:   a.settings.AWSRegion,
				Endpoint: a.settings.AWSEndpoint,
			})
			if err != nil {
				return err
			}
			if table == "" {
				table = a.settings.ExportTable
			}

			summary, err := db.NewExporter(client, table).ExportRecodedRecords(ctx, records)
			if err != nil {
				return err
			}
			return a.render(cmd, summary, func(w io.Writer) {
				report.Note(w, "Export %s: %d records written to %s", summary.ExportID, summary.Written, table)
				if summary.Unprocessed > 0 {
					report.Warn(w, "%d records were not written", summary.Unprocessed)
				}
			})
		}),
	}
	cmd.Flags().StringVar(&table, "table", "", "DynamoDB table; defaults to EXPORT_TABLE")
	return cmd
}
