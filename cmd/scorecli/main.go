package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/creditscorepro/scoring-service/internal/application/dto"
	"github.com/creditscorepro/scoring-service/internal/application/usecase"
	"github.com/creditscorepro/scoring-service/internal/domain/service"
	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
	"github.com/creditscorepro/scoring-service/internal/infrastructure/adapter"
	"github.com/creditscorepro/scoring-service/internal/platform/observability"
)

var (
	name    = "scorecli"
	version = "v0.1.0-default"
	commit  = ""
)

func main() {
	logger := observability.InitLogger(observability.LogConfig{
		Level:  "warn",
		Format: "text",
	})
	slog.SetDefault(logger)

	app := &cli.App{
		Name:     name,
		Version:  fmt.Sprintf("%s - (commit: %s)", version, commit),
		Compiled: time.Now(),
		Usage:    "CLI for offline credit analysis and loan calculators",
		Commands: []*cli.Command{
			analyzeCmd,
			paymentCmd,
			capacityCmd,
			scheduleCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newEngine wires an offline decision engine with the stub classifier.
// Set MODEL_URL to score against a live model server instead.
func newEngine() *service.DecisionEngine {
	var scorer *service.RiskScorer
	if url := os.Getenv("MODEL_URL"); url != "" {
		cfg := adapter.DefaultModelClientConfig()
		cfg.BaseURL = url
		cfg.APIKey = os.Getenv("MODEL_API_KEY")
		scorer = service.NewRiskScorer(adapter.NewModelClient(cfg), service.DefaultFeatureNames())
	} else {
		scorer = service.NewRiskScorer(adapter.NewStubClassifier(), service.DefaultFeatureNames())
	}
	return service.NewDecisionEngine(valueobject.DefaultLendingPolicy(), scorer)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var analyzeCmd = &cli.Command{
	Name:  "analyze",
	Usage: "Run a full credit analysis on one application",
	Flags: []cli.Flag{
		&cli.Float64Flag{Name: "income", Usage: "Gross annual income in EUR", Required: true},
		&cli.Float64Flag{Name: "principal", Usage: "Requested loan amount in EUR", Required: true},
		&cli.IntFlag{Name: "years", Usage: "Loan term in years", Required: true},
		&cli.IntFlag{Name: "age", Usage: "Applicant age in years", Required: true},
		&cli.Float64Flag{Name: "employed", Usage: "Years in current employment"},
		&cli.IntFlag{Name: "children", Usage: "Number of dependent children"},
		&cli.Float64Flag{Name: "charges", Usage: "Existing monthly charges in EUR"},
		&cli.Float64Flag{Name: "down-payment", Usage: "Down payment in EUR"},
	},
	Action: func(c *cli.Context) error {
		uc := usecase.NewAnalyzeApplicationUseCase(newEngine(), nil, nil, slog.Default())
		resp, err := uc.Execute(context.Background(), dto.AnalyzeRequest{
			AnnualIncome:    c.Float64("income"),
			Principal:       c.Float64("principal"),
			TermYears:       c.Int("years"),
			Age:             c.Int("age"),
			EmploymentYears: c.Float64("employed"),
			Children:        c.Int("children"),
			ExistingCharges: c.Float64("charges"),
			DownPayment:     c.Float64("down-payment"),
		})
		if err != nil {
			return err
		}
		return printJSON(resp)
	},
}

var paymentCmd = &cli.Command{
	Name:  "payment",
	Usage: "Compute the monthly payment and total cost of a loan",
	Flags: []cli.Flag{
		&cli.Float64Flag{Name: "principal", Usage: "Loan amount in EUR", Required: true},
		&cli.Float64Flag{Name: "rate", Usage: "Annual interest rate (e.g. 0.035)", Required: true},
		&cli.IntFlag{Name: "years", Usage: "Loan term in years", Required: true},
	},
	Action: func(c *cli.Context) error {
		uc := usecase.NewComputePaymentUseCase(newEngine().Calculator())
		resp, err := uc.Execute(dto.PaymentRequest{
			Principal:  c.Float64("principal"),
			AnnualRate: c.Float64("rate"),
			TermYears:  c.Int("years"),
		})
		if err != nil {
			return err
		}
		return printJSON(resp)
	},
}

var capacityCmd = &cli.Command{
	Name:  "capacity",
	Usage: "Compute the maximum affordable principal for an income",
	Flags: []cli.Flag{
		&cli.Float64Flag{Name: "income", Usage: "Net monthly income in EUR", Required: true},
		&cli.Float64Flag{Name: "rate", Usage: "Annual interest rate (e.g. 0.035)", Required: true},
		&cli.IntFlag{Name: "years", Usage: "Loan term in years", Required: true},
		&cli.Float64Flag{Name: "charges", Usage: "Existing monthly charges in EUR"},
	},
	Action: func(c *cli.Context) error {
		uc := usecase.NewComputeCapacityUseCase(newEngine().Calculator())
		resp, err := uc.Execute(dto.CapacityRequest{
			MonthlyIncome:   c.Float64("income"),
			AnnualRate:      c.Float64("rate"),
			TermYears:       c.Int("years"),
			ExistingCharges: c.Float64("charges"),
		})
		if err != nil {
			return err
		}
		return printJSON(resp)
	},
}

var scheduleCmd = &cli.Command{
	Name:  "schedule",
	Usage: "Print the yearly amortization schedule of a loan",
	Flags: []cli.Flag{
		&cli.Float64Flag{Name: "principal", Usage: "Loan amount in EUR", Required: true},
		&cli.Float64Flag{Name: "rate", Usage: "Annual interest rate (e.g. 0.035)", Required: true},
		&cli.IntFlag{Name: "years", Usage: "Loan term in years", Required: true},
	},
	Action: func(c *cli.Context) error {
		uc := usecase.NewAmortizationScheduleUseCase(newEngine().Calculator())
		resp, err := uc.Execute(dto.ScheduleRequest{
			Principal:  c.Float64("principal"),
			AnnualRate: c.Float64("rate"),
			TermYears:  c.Int("years"),
		})
		if err != nil {
			return err
		}
		return printJSON(resp)
	},
}
