// Package rental handles car rental recording commands
package rental

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/taxi-ledger/cmd/root"
	"fjacquet/taxi-ledger/internal/billing"
	"fjacquet/taxi-ledger/internal/models"
)

var (
	rentalID   int
	driver     int
	car        int
	date       string
	rentalType string
	duration   int
)

// Cmd represents the rental command
var Cmd = &cobra.Command{
	Use:   "rental",
	Short: "Record a car rental",
	Long: `Record a car rental for an existing driver. The charge is computed from
the configured daily or weekly rate; rentals never change driver balances.`,
	RunE: rentalFunc,
}

func init() {
	Cmd.Flags().IntVarP(&rentalID, "id", "i", 0, "Rental transaction tag")
	Cmd.Flags().IntVarP(&driver, "driver", "d", 0, "Driver number")
	Cmd.Flags().IntVarP(&car, "car", "c", 0, "Car number")
	Cmd.Flags().StringVarP(&date, "date", "t", "", "Rental date (YYYY-MM-DD, default today)")
	Cmd.Flags().StringVarP(&rentalType, "type", "y", "d", "Rental type: d (daily) or w (weekly)")
	Cmd.Flags().IntVarP(&duration, "duration", "u", 0, "Duration in days or weeks")
	Cmd.MarkFlagRequired("id")
	Cmd.MarkFlagRequired("driver")
	Cmd.MarkFlagRequired("car")
	Cmd.MarkFlagRequired("duration")
}

func rentalFunc(cmd *cobra.Command, args []string) error {
	t, err := models.ParseRentalType(rentalType)
	if err != nil {
		return err
	}

	rentalDate := models.NewDate(time.Now())
	if date != "" {
		if rentalDate, err = models.ParseDate(date); err != nil {
			return fmt.Errorf("invalid rental date: %w", err)
		}
	}

	tx, err := root.AppContainer.Engine().RecordRental(billing.RentalInput{
		RentalID:     rentalID,
		DriverNumber: driver,
		CarNumber:    car,
		Date:         rentalDate,
		Type:         t,
		Duration:     duration,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Rental %d recorded: %s rental of car %d for driver %d, %d %s, total %s.\n",
		tx.RentalID, tx.Type.Label(), tx.CarNumber, tx.DriverNumber, tx.Duration, tx.Type.Unit(), tx.Total.StringFixed(2))
	return nil
}
