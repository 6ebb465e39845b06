package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dwc-revival/nasd/nas/handshake"
	"github.com/dwc-revival/nasd/std/log"
	"github.com/dwc-revival/nasd/std/utils"
	"github.com/dwc-revival/nasd/std/utils/toolutils"
	"github.com/spf13/cobra"
)

// LoginClient sends a login request the way a console does and prints
// what it got back.
type LoginClient struct {
	timeout time.Duration
	get     bool
	client  *http.Client
}

func CmdLogin() *cobra.Command {
	lc := LoginClient{}

	cmd := &cobra.Command{
		GroupID: "tools",
		Use:     "login URL [NAME=VALUE...]",
		Short:   "Send a login request to a NAS server",
		Args:    cobra.MinimumNArgs(1),
		Example: `  nasd login http://127.0.0.1:9000/ac action=login userid=1234567 gsbrcd=ADAJ`,
		Run:     lc.run,
	}

	cmd.Flags().DurationVar(&lc.timeout, "timeout", 5*time.Second, "Request timeout")
	cmd.Flags().BoolVar(&lc.get, "get", false, "Send fields in the query string instead of the body")
	return cmd
}

func (lc *LoginClient) String() string {
	return "login-client"
}

func (lc *LoginClient) run(_ *cobra.Command, args []string) {
	var pairs []string
	for _, arg := range args[1:] {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			log.Fatal(lc, "Invalid field, expected NAME=VALUE", "field", arg)
			return
		}
		pairs = append(pairs, name, value)
	}

	ctx, cancel := context.WithTimeout(context.Background(), lc.timeout)
	defer cancel()

	d, err := lc.Login(ctx, args[0], handshake.EncodeFields(pairs...))
	if err != nil {
		log.Fatal(lc, "Login failed", "err", err)
		return
	}

	p := toolutils.StatusPrinter{File: os.Stdout, Padding: 12}
	for _, f := range d.Fields {
		if f.Name != "token" {
			p.Print(f.Name, f.Value)
		}
	}
	if d.AuthKey != "" {
		fmt.Println("token:")
		printAuthKey(d.AuthKey)
	}
}

// Login sends fields to target and decodes the response. With get set the
// fields are appended to any query target already carries.
func (lc *LoginClient) Login(ctx context.Context, target string, fields handshake.Fields) (*handshake.Decoded, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	var body io.Reader
	if lc.get {
		u.RawQuery = joinQuery(u.RawQuery, fields.Encode())
	} else {
		body = strings.NewReader(fields.Encode())
	}

	method := utils.If(lc.get, http.MethodGet, http.MethodPost)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if !lc.get {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	client := lc.client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", res.Status)
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	log.Debug(lc, "Login response", "node", res.Header.Get("NODE"), "body", string(data))
	return handshake.DecodeResponse(string(data))
}

// joinQuery appends raw query b to a, keeping the order of both.
func joinQuery(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "&" + b
}
