package config

import (
	"context"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store/sqlstore"
)

var meowWhatsapp *whatsmeow.Client

func getDBMS() (*string, error) {
	dbms := os.Getenv("DBMS")
	if dbms == "" {
		return nil, fmt.Errorf("DBMS is missing, value: %s", dbms)
	}
	return &dbms, nil
}

func getDBUser() (*string, error) {
	v := os.Getenv("DB_USER")
	if v == "" {
		return nil, fmt.Errorf("Database User is missing, value: %s", v)
	}
	return &v, nil
}

func getDBPassword() (*string, error) {
	v := os.Getenv("DB_PASSWORD")
	if v == "" {
		return nil, fmt.Errorf("Database Password is missing, value: %s", v)
	}
	return &v, nil
}

func getDBName() (*string, error) {
	v := os.Getenv("DB_DATABASE")
	if v == "" {
		return nil, fmt.Errorf("DB Name is missing, value: %s", v)
	}
	return &v, nil
}

// InitMeow connects the WhatsApp client used as the notification sink.
// First run requires an admin to scan the printed pairing code.
func InitMeow() (*whatsmeow.Client, error) {
	if meowWhatsapp != nil {
		return meowWhatsapp, nil
	}

	dbms, err := getDBMS()
	if err != nil {
		return nil, err
	}

	user, err := getDBUser()
	if err != nil {
		return nil, err
	}

	pass, err := getDBPassword()
	if err != nil {
		return nil, err
	}

	dbname, err := getDBName()
	if err != nil {
		return nil, err
	}

	meowAddress := fmt.Sprintf("user=%s password=%s dbname=%s sslmode=disable", *user, *pass, *dbname)

	container, err := sqlstore.New(*dbms, meowAddress, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open whatsmeow store: %w", err)
	}

	deviceStore, err := container.GetFirstDevice()
	if err != nil {
		return nil, fmt.Errorf("failed to load whatsmeow device: %w", err)
	}

	client := whatsmeow.NewClient(deviceStore, nil)
	meowWhatsapp = client

	if meowWhatsapp.Store.ID == nil {
		qrChan, _ := meowWhatsapp.GetQRChannel(context.Background())
		if err := meowWhatsapp.Connect(); err != nil {
			return nil, err
		}
		// No stored session: print the pairing code so an admin can link
		// the school's WhatsApp account.
		for evt := range qrChan {
			if evt.Event == "code" {
				fmt.Println("==============  PAIRING CODE  ==============")
				fmt.Println(evt.Code)
				fmt.Println("Scan the code with the school WhatsApp account to continue")
			} else {
				fmt.Println("Login event:", evt.Event)
			}
		}
	} else {
		if err := meowWhatsapp.Connect(); err != nil {
			return nil, err
		}
		GetLogrusInstance().Info("WhatsApp login success")
	}

	return meowWhatsapp, nil
}
