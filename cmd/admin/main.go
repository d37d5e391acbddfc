// Command admin is the ops CLI: seed admin accounts, register field
// workers, resolve complaints from the terminal and clean up stale OTPs.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"nagarrakshak/backend/internal/complaint"
	"nagarrakshak/backend/internal/models"
	"nagarrakshak/backend/internal/storage"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN is not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for the CLI

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "create-admin":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin create-admin <username> <password>")
			os.Exit(1)
		}
		if err := createAdmin(storageSvc, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("Error creating admin: %v", err)
		}
		fmt.Printf("Admin %s has been created.\n", os.Args[2])

	case "add-worker":
		if len(os.Args) != 5 {
			fmt.Println("Usage: admin add-worker <full_name> <contact> <department>[,<department>...]")
			os.Exit(1)
		}
		if err := addWorker(storageSvc, os.Args[2], os.Args[3], os.Args[4]); err != nil {
			log.Fatalf("Error adding worker: %v", err)
		}
		fmt.Printf("Worker %s has been registered.\n", os.Args[2])

	case "resolve":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin resolve <complaint_code> [note]")
			os.Exit(1)
		}
		note := "Resolved from the ops CLI"
		if len(os.Args) > 3 {
			note = strings.Join(os.Args[3:], " ")
		}
		if err := resolveComplaint(storageSvc, os.Args[2], note); err != nil {
			log.Fatalf("Error resolving complaint: %v", err)
		}
		fmt.Printf("Complaint %s has been resolved.\n", os.Args[2])

	case "cleanup-otps":
		n, err := storageSvc.DeleteExpiredOTPs(time.Now())
		if err != nil {
			log.Fatalf("Error cleaning up OTPs: %v", err)
		}
		fmt.Printf("Deleted %d expired OTP records.\n", n)

	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: admin <command> [args]")
	fmt.Println("Commands: create-admin, add-worker, resolve, cleanup-otps")
}

func createAdmin(s storage.Storage, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.CreateAdmin(&models.Admin{
		Username: username,
		Password: string(hash),
		Role:     models.RoleAdmin,
		IsActive: true,
	})
}

func addWorker(s storage.Storage, fullName, contact, departments string) error {
	return s.CreateWorker(&models.Worker{
		FullName:    fullName,
		Contact:     contact,
		Departments: pq.StringArray(strings.Split(departments, ",")),
		Status:      models.WorkerAvailable,
	})
}

func resolveComplaint(s storage.Storage, code, note string) error {
	svc := complaint.NewService(s)
	c, err := s.GetComplaintByCode(strings.ToUpper(code))
	if err != nil {
		return err
	}
	_, err = svc.UpdateStatus(c.ID, complaint.UpdateStatusInput{
		Status: models.StatusResolved,
		Note:   note,
	})
	return err
}
