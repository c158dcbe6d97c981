package app

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	log "github.com/sirupsen/logrus"
)

func accessSecretVersion(client *secretmanager.Client, name string) (string, error) {
	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", Config.GoogleSecretManager.ProjectId, name),
	}

	result, err := client.AccessSecretVersion(context.Background(), req)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(result.Payload.Data)), nil
}

func readSecret(client *secretmanager.Client, target *string, secretName string, label string) {
	if *target != "" || secretName == "" {
		return
	}

	log.Debug("[GSM] Reading ", label)
	value, err := accessSecretVersion(client, secretName)
	if err != nil {
		log.Fatalf("[GSM] Failed to access %s: %v", label, err)
	}
	*target = value
	log.Info("[GSM] Successfully read ", label)
}

func readKeysFromGSM() {
	if !Config.GoogleSecretManager.Enabled {
		log.Debug("[GSM] Google Secret Manager is disabled")
		return
	}

	if Config.GoogleSecretManager.ProjectId == "" {
		log.Fatalf("[GSM] ProjectId is empty")
	}

	ctx := context.Background()
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		log.Fatalf("[GSM] Failed to create secretmanager client: %v", err)
	}
	defer client.Close()

	if Config.Ethereum.PrivateKey == "" && Config.Ethereum.Mnemonic == "" && Config.Ethereum.GcpKmsKeyName == "" {
		if Config.GoogleSecretManager.EthSecretName == "" {
			log.Fatalf("[GSM] Ethereum secret name is empty")
		}
	}

	readSecret(client, &Config.MongoDB.URI, Config.GoogleSecretManager.MongoSecretName, "mongodb uri")
	if Config.Ethereum.Mnemonic == "" && Config.Ethereum.GcpKmsKeyName == "" {
		readSecret(client, &Config.Ethereum.PrivateKey, Config.GoogleSecretManager.EthSecretName, "ethereum private key")
	}
	readSecret(client, &Config.PaymentGateway.SecretKey, Config.GoogleSecretManager.GatewaySecretName, "payment gateway secret key")
	readSecret(client, &Config.PaymentGateway.WebhookSecret, Config.GoogleSecretManager.WebhookSecretName, "payment gateway webhook secret")
}
