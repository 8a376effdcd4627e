// Command diag exercises the Cost Explorer and STS integrations outside the
// HTTP surface. It helps diagnose billing data retrieval issues with a given
// set of credentials: identity check, dimension lookup, then a trailing cost
// summary.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/de-tools/billing-atlas/pkg/models/domain"
	"github.com/de-tools/billing-atlas/pkg/services/aws_ce"
	"github.com/de-tools/billing-atlas/pkg/services/aws_sts"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type diagCmd struct {
	accessKeyID     string
	secretAccessKey string
	region          string
	days            int

	costs    aws_ce.Explorer
	identity aws_sts.Service
}

func main() {
	dc := &diagCmd{
		costs:    aws_ce.NewExplorer(nil),
		identity: aws_sts.NewService(nil),
	}

	cmd := &cobra.Command{
		Use:   "diag",
		Short: "Check AWS credentials and billing data access",
		RunE:  dc.run,
	}

	cmd.Flags().StringVar(&dc.accessKeyID, "access-key-id", "", "AWS access key ID (defaults to AWS_ACCESS_KEY_ID)")
	cmd.Flags().StringVar(&dc.secretAccessKey, "secret-access-key", "", "AWS secret access key (defaults to AWS_SECRET_ACCESS_KEY)")
	cmd.Flags().StringVar(&dc.region, "region", "", "AWS region (defaults to AWS_REGION or us-east-1)")
	cmd.Flags().IntVar(&dc.days, "days", 30, "Number of trailing days to summarize")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (dc *diagCmd) run(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment from .env")
	}

	creds := dc.credentials()
	if err := creds.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := dc.checkIdentity(ctx, creds); err != nil {
		return err
	}
	if err := dc.listServices(ctx, creds); err != nil {
		return err
	}
	return dc.summarizeCosts(ctx, creds)
}

func (dc *diagCmd) credentials() domain.Credentials {
	creds := domain.Credentials{
		AccessKeyID:     dc.accessKeyID,
		SecretAccessKey: dc.secretAccessKey,
		Region:          dc.region,
	}
	if creds.AccessKeyID == "" {
		creds.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	}
	if creds.SecretAccessKey == "" {
		creds.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}
	if creds.Region == "" {
		creds.Region = os.Getenv("AWS_REGION")
	}
	return creds.WithDefaults()
}

func (dc *diagCmd) checkIdentity(ctx context.Context, creds domain.Credentials) error {
	fmt.Println("Checking AWS credentials...")

	result := dc.identity.ValidateCredentials(ctx, creds)
	if !result.Valid {
		return fmt.Errorf("credential check failed: %s", result.Error)
	}

	fmt.Printf("Credentials valid for account %s\n", result.AccountID)
	return nil
}

func (dc *diagCmd) listServices(ctx context.Context, creds domain.Credentials) error {
	fmt.Println("Listing services with recent usage...")

	values, err := dc.costs.GetDimensionValues(ctx, creds, domain.DimensionService, domain.LastDays(7))
	if err != nil {
		return fmt.Errorf("dimension lookup failed: %w", err)
	}

	fmt.Printf("Found %d services in the last 7 days\n", len(values))
	for i, value := range values {
		if i == 5 {
			fmt.Printf("  ... and %d more\n", len(values)-i)
			break
		}
		fmt.Printf("  - %s\n", value)
	}
	return nil
}

func (dc *diagCmd) summarizeCosts(ctx context.Context, creds domain.Credentials) error {
	fmt.Printf("Retrieving cost data for the last %d days...\n", dc.days)

	report, err := dc.costs.GetCostAndUsage(ctx, creds, domain.CostQuery{
		Period:      domain.LastDays(dc.days),
		Granularity: domain.GranularityDaily,
		Metrics:     []string{"BlendedCost"},
		GroupBy:     []domain.GroupBy{{Type: "DIMENSION", Key: domain.DimensionService}},
	})
	if err != nil {
		return fmt.Errorf("cost lookup failed: %w", err)
	}

	// Display-level summation only; everywhere else amounts stay strings.
	totals := make(map[string]float64)
	unit := "USD"
	for _, result := range report.Results {
		for _, group := range result.Groups {
			if group.Metrics.BlendedCost == nil || len(group.Keys) == 0 {
				continue
			}
			amount, err := strconv.ParseFloat(group.Metrics.BlendedCost.Amount, 64)
			if err != nil {
				continue
			}
			totals[group.Keys[0]] += amount
			unit = group.Metrics.BlendedCost.Unit
		}
	}

	services := make([]string, 0, len(totals))
	for service := range totals {
		services = append(services, service)
	}
	sort.Slice(services, func(i, j int) bool {
		return totals[services[i]] > totals[services[j]]
	})

	var grandTotal float64
	for _, service := range services {
		grandTotal += totals[service]
	}

	fmt.Printf("Period: %s to %s\n", report.Period.Start, report.Period.End)
	for i, service := range services {
		if i == 10 {
			fmt.Printf("  ... and %d more services\n", len(services)-i)
			break
		}
		fmt.Printf("  %-50s %10.2f %s\n", service, totals[service], unit)
	}
	fmt.Printf("Total: %.2f %s\n", grandTotal, unit)

	return nil
}
