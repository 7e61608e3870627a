// Package menu provides the interactive console for the company services
// system. It mirrors the original console workflow: a numbered menu with
// re-prompting validation on every field.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/taxi-ledger/cmd/root"
	"fjacquet/taxi-ledger/internal/billing"
	"fjacquet/taxi-ledger/internal/dateutils"
	"fjacquet/taxi-ledger/internal/models"
	"fjacquet/taxi-ledger/internal/validation"
)

// Cmd represents the menu command
var Cmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive company services system",
	Long: `Run the interactive menu. On startup the data files are initialized if
absent, and on the first day of the month the stand fees are billed
automatically.`,
	RunE: menuFunc,
}

// console bundles the I/O and engine handles for one interactive session.
type console struct {
	in     *bufio.Scanner
	out    io.Writer
	engine *billing.Engine
	now    func() time.Time
}

func menuFunc(cmd *cobra.Command, args []string) error {
	c := &console{
		in:     bufio.NewScanner(cmd.InOrStdin()),
		out:    cmd.OutOrStdout(),
		engine: root.AppContainer.Engine(),
		now:    time.Now,
	}
	return c.run()
}

func (c *console) run() error {
	if _, err := c.engine.Bootstrap(); err != nil {
		return err
	}

	// Stand fees are charged automatically on the first day of the month.
	today := c.now()
	if dateutils.IsFirstOfMonth(today) {
		run, err := c.engine.BillStandFees(today, false)
		switch {
		case errors.Is(err, billing.ErrAlreadyBilled):
			// Already charged this month, nothing to do.
		case err != nil:
			return err
		default:
			fmt.Fprintf(c.out, "\nStand fees successfully charged for %s. Revenue and driver balances updated.\n", run.Month)
		}
	}

	for {
		fmt.Fprintf(c.out, "\n%sHAB Taxi Services\n", strings.Repeat(" ", 10))
		fmt.Fprintf(c.out, "%sCompany Services System\n\n", strings.Repeat(" ", 7))
		fmt.Fprintln(c.out, "1. Enter a New Employee (driver).")
		fmt.Fprintln(c.out, "2. Enter Company Revenues.")
		fmt.Fprintln(c.out, "3. Enter Company Expenses.")
		fmt.Fprintln(c.out, "4. Track Car Rentals.")
		fmt.Fprintln(c.out, "5. Record Employee Payment.")
		fmt.Fprintln(c.out, "6. Print Company Profit Listing.")
		fmt.Fprintln(c.out, "7. Print Driver Financial Listing.")
		fmt.Fprintln(c.out, "8. Quit Program.")
		fmt.Fprintln(c.out)

		choice, err := c.promptChoice()
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = c.addDriver()
		case 2:
			fmt.Fprintln(c.out, "\nThe logic for choice #2 has yet to be implemented")
		case 3:
			fmt.Fprintln(c.out, "\nThe logic for choice #3 has yet to be implemented")
		case 4:
			err = c.trackRental()
		case 5:
			err = c.recordPayment()
		case 6:
			err = c.profitListing()
		case 7:
			err = c.driverListing()
		case 8:
			fmt.Fprintln(c.out, "Exiting Program")
			return nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// readLine reads one input line. io.EOF ends the session cleanly.
func (c *console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *console) promptChoice() (int, error) {
	for {
		line, err := c.readLine(strings.Repeat(" ", 12) + "Enter choice (1-8): ")
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(line)
		if convErr == nil && n >= 1 && n <= 8 {
			return n, nil
		}
		fmt.Fprintln(c.out, "Invalid choice. Please enter a number between 1 and 8.")
	}
}

// promptValidated re-prompts until validate accepts the input.
func (c *console) promptValidated(prompt, retryMsg string, validate func(string) error) (string, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return "", err
		}
		if validate(line) == nil {
			return line, nil
		}
		fmt.Fprintln(c.out, retryMsg)
	}
}

func (c *console) promptInt(prompt, retryMsg string) (int, error) {
	line, err := c.promptValidated(prompt, retryMsg, func(s string) error {
		if !validation.IsDigits(s) {
			return fmt.Errorf("not numeric")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(line)
}

// promptDriverNumber re-prompts until an existing driver number is entered.
func (c *console) promptDriverNumber(prompt string) (int, error) {
	for {
		n, err := c.promptInt(prompt, "Invalid input. Driver number must be numeric.")
		if err != nil {
			return 0, err
		}
		exists, err := root.AppContainer.Stores().Employees.Exists(n)
		if err != nil {
			return 0, err
		}
		if exists {
			return n, nil
		}
		fmt.Fprintln(c.out, "Driver number does not exist. Please try again.")
	}
}

func (c *console) addDriver() error {
	name, err := c.promptValidated("Enter driver name: ", "Invalid Name. Please try again.", func(s string) error {
		return validation.Text("name", s)
	})
	if err != nil {
		return err
	}

	address, err := c.promptValidated("Enter driver address: ", "Invalid Address. Please try again.", func(s string) error {
		return validation.Text("address", s)
	})
	if err != nil {
		return err
	}

	phone, err := c.promptValidated("Enter driver phone number (##########): ",
		"Phone number must be 10 digits. Please try again.", validation.Phone)
	if err != nil {
		return err
	}

	licenseNum, err := c.promptValidated("Enter driver license number: ",
		"Invalid License Number. Please try again.", func(s string) error {
			return validation.Digits("license number", s)
		})
	if err != nil {
		return err
	}

	var expiry models.Date
	for {
		line, err := c.readLine("Enter license expiry date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		parsed, parseErr := models.ParseDate(line)
		if parseErr != nil {
			fmt.Fprintln(c.out, "Date must be in YYYY-MM-DD format. Please try again.")
			continue
		}
		if validation.LicenseExpiry(parsed.Time, c.now()) != nil {
			fmt.Fprintln(c.out, "License is expired. Please try again.")
			continue
		}
		expiry = parsed
		break
	}

	insurer, err := c.promptValidated("Enter insurance company name: ",
		"Invalid insurance company. Please try again.", func(s string) error {
			return validation.Text("insurance company", s)
		})
	if err != nil {
		return err
	}

	policyNum, err := c.promptValidated("Enter insurance policy number: ",
		"Policy number must be numeric. Please try again.", func(s string) error {
			return validation.Digits("policy number", s)
		})
	if err != nil {
		return err
	}

	var ownsCar bool
	for {
		line, err := c.readLine("Does the driver own a car? (Y/N): ")
		if err != nil {
			return err
		}
		switch strings.ToUpper(line) {
		case "Y":
			ownsCar = true
		case "N":
			ownsCar = false
		default:
			fmt.Fprintln(c.out, "Invalid input. Must be Y or N. Please try again.")
			continue
		}
		break
	}

	if _, err := c.engine.AddDriver(billing.NewDriver{
		Name:             name,
		Address:          address,
		Phone:            phone,
		LicenseNumber:    licenseNum,
		LicenseExpiry:    expiry,
		InsuranceCompany: insurer,
		PolicyNumber:     policyNum,
		OwnsCar:          ownsCar,
	}); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "\nEmployee successfully added!")
	return nil
}

func (c *console) trackRental() error {
	fmt.Fprintln(c.out, "\n"+strings.Repeat("-", 50))
	fmt.Fprintln(c.out, "Track Car Rentals")
	fmt.Fprintln(c.out, strings.Repeat("-", 50))

	rentalID, err := c.promptInt("Enter Rental ID: ", "Invalid Rental ID. Please enter a valid numeric Rental ID.")
	if err != nil {
		return err
	}

	driverNum, err := c.promptDriverNumber("Enter Driver Number: ")
	if err != nil {
		return err
	}

	carNum, err := c.promptInt("Enter Car Number: ", "Car number must be a numeric value. Please try again.")
	if err != nil {
		return err
	}

	var rentalType models.RentalType
	for {
		line, err := c.readLine("Enter rental type ('d' for Daily / 'w' for Weekly): ")
		if err != nil {
			return err
		}
		parsed, parseErr := models.ParseRentalType(line)
		if parseErr != nil {
			fmt.Fprintln(c.out, "Invalid input. Please enter 'd' for Daily or 'w' for Weekly.")
			continue
		}
		rentalType = parsed
		break
	}

	var duration int
	for {
		line, err := c.readLine(fmt.Sprintf("Enter rental duration in %s: ", rentalType.Unit()))
		if err != nil {
			return err
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil {
			fmt.Fprintln(c.out, "Invalid input. Please enter an integer.")
			continue
		}
		if validation.RentalDuration(n) != nil {
			fmt.Fprintln(c.out, "Duration must be a positive integer. Please try again.")
			continue
		}
		duration = n
		break
	}

	tx, err := c.engine.RecordRental(billing.RentalInput{
		RentalID:     rentalID,
		DriverNumber: driverNum,
		CarNumber:    carNum,
		Date:         models.NewDate(c.now()),
		Type:         rentalType,
		Duration:     duration,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "\nRental information successfully recorded!")
	fmt.Fprintln(c.out, strings.Repeat("-", 50))
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Rental ID: %d\n", tx.RentalID)
	fmt.Fprintf(c.out, "Driver Number: %d\n", tx.DriverNumber)
	fmt.Fprintf(c.out, "Car Number: %d\n", tx.CarNumber)
	fmt.Fprintf(c.out, "Rental Type: %s\n", tx.Type.Label())
	fmt.Fprintf(c.out, "Rental Duration: %d %s\n", tx.Duration, tx.Type.Unit())
	fmt.Fprintln(c.out, strings.Repeat("-", 50))
	fmt.Fprintf(c.out, "Total Rental Amount: $%s\n", tx.Amount.StringFixed(2))
	fmt.Fprintf(c.out, "HST (tax): $%s\n", tx.HST.StringFixed(2))
	fmt.Fprintf(c.out, "Total Amount Due: $%s\n", tx.Total.StringFixed(2))
	fmt.Fprintln(c.out, strings.Repeat("-", 50))
	return nil
}

func (c *console) recordPayment() error {
	fmt.Fprintln(c.out, "\n"+strings.Repeat("-", 50))
	fmt.Fprintln(c.out, "Record Employee Payment")
	fmt.Fprintln(c.out, strings.Repeat("-", 50))

	driverNum, err := c.promptDriverNumber("Enter Driver Number to record the payment: ")
	if err != nil {
		return err
	}

	var amount decimal.Decimal
	for {
		line, err := c.readLine(fmt.Sprintf("Enter payment amount for driver %d: $", driverNum))
		if err != nil {
			return err
		}
		parsed, parseErr := decimal.NewFromString(line)
		if parseErr != nil {
			fmt.Fprintln(c.out, "Invalid input. Payment amount must be numeric.")
			continue
		}
		if validation.PaymentAmount(parsed) != nil {
			fmt.Fprintln(c.out, "Payment amount must be positive. Please try again.")
			continue
		}
		amount = parsed
		break
	}

	receipt, err := c.engine.RecordPayment(driverNum, amount)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "\nPayment successfully recorded!")
	fmt.Fprintln(c.out, "==============================")
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Driver Number: %d\n", driverNum)
	fmt.Fprintf(c.out, "Payment Amount: $%s\n", receipt.Payment.Amount.StringFixed(2))
	fmt.Fprintf(c.out, "New Balance: $%s\n", receipt.NewBalance.StringFixed(2))
	fmt.Fprintln(c.out, strings.Repeat("-", 50))
	fmt.Fprintln(c.out)
	return nil
}

func (c *console) profitListing() error {
	reports := root.AppContainer.Reports()

	listing, err := reports.Profit()
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "\n"+strings.Repeat("-", 30))
	fmt.Fprintln(c.out, "Profit Listing Report")
	fmt.Fprintln(c.out, "For HAB Taxi Services")
	fmt.Fprintln(c.out, strings.Repeat("-", 30))
	for _, notice := range listing.Notices {
		fmt.Fprintf(c.out, "Note: %s\n", notice)
	}
	fmt.Fprintf(c.out, "Total Revenue: $%s\n", listing.Revenue.StringFixed(2))
	fmt.Fprintf(c.out, "Total Expenses: $%s\n", listing.Expenses.StringFixed(2))
	fmt.Fprintf(c.out, "Company Profit: $%s\n", listing.Profit.StringFixed(2))
	fmt.Fprintln(c.out, strings.Repeat("-", 30))
	return nil
}

func (c *console) driverListing() error {
	reports := root.AppContainer.Reports()

	listing, err := reports.Drivers()
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "\n"+strings.Repeat("-", 63))
	fmt.Fprintf(c.out, "%sDriver Financial Listing Report\n", strings.Repeat(" ", 15))
	fmt.Fprintln(c.out, strings.Repeat("-", 63))
	fmt.Fprintf(c.out, "%-15s %-15s %-15s %-15s\n", "Driver Number", "Driver Name", "Balance Due", "Total Payments")
	fmt.Fprintln(c.out, strings.Repeat("-", 63))
	for _, d := range listing.Drivers {
		fmt.Fprintf(c.out, "%-15d %-15s $%-15s $%-15s\n",
			d.DriverNumber, d.Name, d.BalanceDue.StringFixed(2), d.TotalPayments.StringFixed(2))
	}
	fmt.Fprintln(c.out, strings.Repeat("-", 63))
	return nil
}
