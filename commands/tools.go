package commands

import (
	"fmt"
	"io"
	"strings"

	"civiclens/classification"
	"civiclens/location"
	"civiclens/models"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <description>",
		Short: "Classify a description and show the receiving department",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := classification.Classify(strings.Join(args, " "))
			return writeJSON(cmd.OutOrStdout(), struct {
				models.ClassificationResult
				Department string `json:"department"`
			}{result, classification.DepartmentFor(result.Category)})
		},
	}
}

func departmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "department <category>",
		Short: "Show the department a category is routed to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := models.IssueCategory(args[0])
			if !category.Valid() {
				return errors.Errorf("unknown category %q", args[0])
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), classification.DepartmentFor(category))
			return err
		},
	}
}

func reportCmd() *cobra.Command {
	var description, address, district, category, severity string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the municipal report for a description",
		Long: `Render the municipal report for a description.

Category and severity come from the classifier unless both --category and --severity
are given; they are always assigned together. Without an address or district the report
prints the location as unavailable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(description) == "" {
				return errors.New("--description is required")
			}

			result := classification.Classify(description)
			if category != "" || severity != "" {
				result.Category = models.IssueCategory(category)
				result.Severity = models.Severity(severity)
				if !result.Category.Valid() {
					return errors.Errorf("unknown category %q", category)
				}
				if !result.Severity.Valid() {
					return errors.Errorf("unknown severity %q", severity)
				}
			}

			var loc *models.Location
			if address != "" || district != "" {
				loc = &models.Location{Address: address, District: district}
			}

			report := classification.GenerateReport(description, result.Category, result.Severity, loc)
			_, err := io.WriteString(cmd.OutOrStdout(), report)
			return err
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "issue description")
	cmd.Flags().StringVar(&address, "address", "", "street address")
	cmd.Flags().StringVar(&district, "district", "", "district name")
	cmd.Flags().StringVar(&category, "category", "", "override the classified category")
	cmd.Flags().StringVar(&severity, "severity", "", "override the classified severity")
	cmd.MarkFlagsRequiredTogether("category", "severity")

	return cmd
}

func geocodeCmd() *cobra.Command {
	var latitude, longitude float64

	cmd := &cobra.Command{
		Use:   "geocode [address]",
		Short: "Resolve an address, or --lat/--lng coordinates, into a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
				return writeJSON(cmd.OutOrStdout(), location.FromCoordinates(latitude, longitude))
			}

			address := strings.TrimSpace(strings.Join(args, " "))
			if address == "" {
				return errors.New("an address or both --lat and --lng are required")
			}
			return writeJSON(cmd.OutOrStdout(), location.NewGeocoder(nil).Geocode(address))
		},
	}

	cmd.Flags().Float64Var(&latitude, "lat", 0, "device latitude")
	cmd.Flags().Float64Var(&longitude, "lng", 0, "device longitude")

	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
