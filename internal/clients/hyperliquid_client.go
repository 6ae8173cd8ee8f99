package clients

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	hyperliquid "github.com/sonirico/go-hyperliquid"
)

const (
	hyperliquidMainnetBaseURL = "https://api.hyperliquid.xyz"
	hyperliquidTestnetBaseURL = "https://api.hyperliquid-testnet.xyz"
)

// HyperliquidClient wraps a Hyperliquid exchange session together with
// the account address derived from its signing key.
type HyperliquidClient struct {
	exchange    *hyperliquid.Exchange
	accountAddr string
}

// NewHyperliquidClient builds a Hyperliquid client. The secret is the
// account's private key in hex; the account address is derived from it.
func NewHyperliquidClient(privateKeyHex string, testnet bool) (*HyperliquidClient, error) {
	key := strings.TrimPrefix(strings.TrimPrefix(privateKeyHex, "0x"), "0X")

	privateKey, err := crypto.HexToECDSA(key)
	if err != nil {
		return nil, err
	}

	pub := privateKey.Public()
	pubECDSA, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("error casting public key to ECDSA")
	}
	accountAddr := crypto.PubkeyToAddress(*pubECDSA).Hex()

	baseURL := hyperliquidMainnetBaseURL
	if testnet {
		baseURL = hyperliquidTestnetBaseURL
	}

	// Info and SpotMeta are fetched lazily by the SDK.
	ex := hyperliquid.NewExchange(
		context.Background(),
		privateKey,
		baseURL,
		nil,
		"",
		accountAddr,
		nil,
	)

	return &HyperliquidClient{exchange: ex, accountAddr: accountAddr}, nil
}

func (c *HyperliquidClient) Exchange() *hyperliquid.Exchange { return c.exchange }

func (c *HyperliquidClient) AccountAddress() string { return c.accountAddr }
