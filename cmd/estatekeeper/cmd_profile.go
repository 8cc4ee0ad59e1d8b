package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"estatekeeper/internal/checklist"
	"estatekeeper/internal/deadline"
	"estatekeeper/internal/types"
)

var (
	profileName    string
	profileDOD     string
	profileCounty  string
	profileState   string
	profileFileNo  string
	profileLetters string
	profileFirstAd string
	profileContact string
	profileEmail   string
	profilePhone   string
	profileAddress string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the estate profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the estate profile and derived deadlines",
	RunE:  profileShow,
}

// profileSetCmd updates the profile and reconciles the checklist in one
// transaction, so template task due dates always match the saved dates.
var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update the estate profile",
	Long: `Creates or updates the estate profile. Only the flags given change;
everything else keeps its current value.

Saving the profile recomputes the statutory deadlines and updates the
checklist tasks derived from them. On the first save the full checklist is
generated; later saves only adjust due dates and never recreate tasks you
deleted.

Example:
  estatekeeper profile set --name "Jane Doe" --date-of-death 2024-01-15 \
    --county Allegheny --state PA --letters-granted 2024-02-01`,
	RunE: profileSet,
}

func init() {
	f := profileSetCmd.Flags()
	f.StringVar(&profileName, "name", "", "Decedent's full name")
	f.StringVar(&profileDOD, "date-of-death", "", "Date of death (YYYY-MM-DD)")
	f.StringVar(&profileCounty, "county", "", "County of probate")
	f.StringVar(&profileState, "state", "", "State of probate")
	f.StringVar(&profileFileNo, "file-number", "", "Court file number")
	f.StringVar(&profileLetters, "letters-granted", "", "Date letters were granted (YYYY-MM-DD)")
	f.StringVar(&profileFirstAd, "first-advertisement", "", "Date of first estate advertisement (YYYY-MM-DD)")
	f.StringVar(&profileContact, "contact-name", "", "Executor contact name")
	f.StringVar(&profileEmail, "contact-email", "", "Executor contact email")
	f.StringVar(&profilePhone, "contact-phone", "", "Executor contact phone")
	f.StringVar(&profileAddress, "contact-address", "", "Executor contact address")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}

func profileSet(cmd *cobra.Command, args []string) error {
	for flag, value := range map[string]string{
		"date-of-death":       profileDOD,
		"letters-granted":     profileLetters,
		"first-advertisement": profileFirstAd,
	} {
		if value == "" {
			continue
		}
		if _, ok := deadline.ParseDate(value); !ok {
			return fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", flag, value)
		}
	}

	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	profile, err := s.Profile()
	if err != nil {
		return err
	}
	if profile == nil {
		profile = &types.EstateProfile{}
	}

	set := func(flag string, dst *string, value string) {
		if cmd.Flags().Changed(flag) {
			*dst = value
		}
	}
	set("name", &profile.DecedentFullName, profileName)
	set("date-of-death", &profile.DateOfDeath, profileDOD)
	set("county", &profile.County, profileCounty)
	set("state", &profile.State, profileState)
	set("file-number", &profile.FileNumber, profileFileNo)
	set("letters-granted", &profile.LettersGrantedDate, profileLetters)
	set("first-advertisement", &profile.FirstAdvertisementDate, profileFirstAd)
	set("contact-name", &profile.ContactName, profileContact)
	set("contact-email", &profile.ContactEmail, profileEmail)
	set("contact-phone", &profile.ContactPhone, profilePhone)
	set("contact-address", &profile.ContactAddress, profileAddress)

	if err := checklist.SaveProfile(s, profile, time.Now().UTC()); err != nil {
		return err
	}
	logger.Info("Profile saved", zap.String("decedent", profile.DecedentFullName))

	fmt.Println("Profile saved.")
	return printDeadlines(profile)
}

func profileShow(cmd *cobra.Command, args []string) error {
	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	profile, err := s.Profile()
	if err != nil {
		return err
	}
	if profile == nil {
		fmt.Println("No profile saved. Run 'estatekeeper profile set' to create one.")
		return nil
	}

	fmt.Printf("Decedent:            %s\n", orDash(profile.DecedentFullName))
	fmt.Printf("Date of death:       %s\n", orDash(profile.DateOfDeath))
	fmt.Printf("County / State:      %s / %s\n", orDash(profile.County), orDash(profile.State))
	fmt.Printf("File number:         %s\n", orDash(profile.FileNumber))
	fmt.Printf("Letters granted:     %s\n", orDash(profile.LettersGrantedDate))
	fmt.Printf("First advertisement: %s\n", orDash(profile.FirstAdvertisementDate))
	if profile.ContactName != "" || profile.ContactEmail != "" {
		fmt.Printf("Contact:             %s %s %s\n",
			orDash(profile.ContactName), profile.ContactEmail, profile.ContactPhone)
	}
	fmt.Println()
	return printDeadlines(profile)
}
