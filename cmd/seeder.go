package cmd

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		_, db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			// FK order: entries first, then memberships, then the rest
			for _, table := range []string{"productivity_entries", "user_sections", "sections", "users"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		users := []struct {
			Username string
			Role     string
		}{
			{"admin", "admin"},
			{"manager", "manager"},
			{"lead_anna", "lead"},
			{"lead_budi", "lead"},
			{"employee_citra", "employee"},
		}

		for _, u := range users {
			if rowExists(db, "SELECT 1 FROM users WHERE username = ?", u.Username) {
				fmt.Printf("user %s already exists, skipping\n", u.Username)
				continue
			}
			_, err := db.Exec(db.Rebind("INSERT INTO users (username, password_hash, role, is_superuser, is_active, created_at, updated_at) VALUES (?, ?, ?, false, true, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)"),
				u.Username, string(hash), u.Role)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Username, err)
			}
			fmt.Printf("Seeded user: %s (%s)\n", u.Username, u.Role)
		}

		sections := []struct {
			Name string
			Desc string
		}{
			{"Inbound", "Receiving and bundle opening"},
			{"Sorting", "Sorting and stickering"},
			{"Outbound", "Picking, scanning and loading"},
		}

		for _, s := range sections {
			if rowExists(db, "SELECT 1 FROM sections WHERE name = ?", s.Name) {
				continue
			}
			_, err := db.Exec(db.Rebind("INSERT INTO sections (name, description, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)"), s.Name, s.Desc)
			if err != nil {
				log.Fatalf("failed to insert section %s: %v", s.Name, err)
			}
			fmt.Printf("Seeded section: %s\n", s.Name)
		}

		memberships := []struct {
			Username string
			Section  string
		}{
			{"lead_anna", "Inbound"},
			{"lead_anna", "Sorting"},
			{"lead_budi", "Outbound"},
			{"employee_citra", "Inbound"},
		}

		for _, m := range memberships {
			var userID, sectionID int64
			if err := db.Get(&userID, db.Rebind("SELECT id FROM users WHERE username = ?"), m.Username); err != nil {
				log.Fatalf("failed to look up user %s: %v", m.Username, err)
			}
			if err := db.Get(&sectionID, db.Rebind("SELECT id FROM sections WHERE name = ?"), m.Section); err != nil {
				log.Fatalf("failed to look up section %s: %v", m.Section, err)
			}
			if rowExists(db, "SELECT 1 FROM user_sections WHERE user_id = ? AND section_id = ?", userID, sectionID) {
				continue
			}
			if _, err := db.Exec(db.Rebind("INSERT INTO user_sections (user_id, section_id) VALUES (?, ?)"), userID, sectionID); err != nil {
				log.Fatalf("failed to insert membership %s -> %s: %v", m.Username, m.Section, err)
			}
			fmt.Printf("Seeded membership: %s -> %s\n", m.Username, m.Section)
		}

		fmt.Println("Seeding complete. All seeded accounts use password:", password)
	},
}

func rowExists(db *sqlx.DB, query string, args ...interface{}) bool {
	var one int
	return db.Get(&one, db.Rebind(query), args...) == nil
}
