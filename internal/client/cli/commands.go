package cli

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/iudanet/enable/internal/crypto"
	"github.com/iudanet/enable/internal/models"
	"github.com/iudanet/enable/internal/server/jwt"
	"github.com/iudanet/enable/internal/validation"
	"github.com/iudanet/enable/pkg/api"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// RunAddUser регистрирует пользователя
func (c *Cli) RunAddUser(ctx context.Context, args []string) error {
	fs := newFlagSet("add-user")
	id := fs.String("id", "", "user id")
	key := fs.String("key", "", "private key hex")
	keyFile := fs.String("key-file", "", "file with private key hex")
	publicKey := fs.String("public-key", "", "public key hex")
	derive := fs.Bool("derive-public", false, "derive the public key with the selected scheme")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := validation.ValidateUserID(*id); err != nil {
		return err
	}
	if *publicKey != "" && *derive {
		return fmt.Errorf("use either -public-key or -derive-public")
	}

	privateKey, err := c.readPrivateKey(KeySources{FromArgs: *key, FromFile: *keyFile})
	if err != nil {
		return err
	}

	public := *publicKey
	if *derive {
		kp, err := c.scheme.KeyPair(privateKey)
		if err != nil {
			return fmt.Errorf("failed to derive public key: %w", err)
		}
		public = hex.EncodeToString(kp.PublicKey())
	} else if public != "" {
		if _, err := validation.DecodeHex("public key", public); err != nil {
			return err
		}
	}

	resp, err := c.client.AddUser(ctx, api.AddUserRequest{
		UserID:     *id,
		PrivateKey: hex.EncodeToString(privateKey),
		PublicKey:  public,
	})
	if err != nil {
		return err
	}

	c.io.Printf("User %s added\n", resp.UserID)
	if public != "" {
		c.io.Printf("Public key: %s\n", public)
	}
	return nil
}

// RunAddLogin выпускает challenge
func (c *Cli) RunAddLogin(ctx context.Context, args []string) error {
	fs := newFlagSet("add-login")
	id := fs.String("id", "", "user id")
	codeFlag := fs.String("code", "", "challenge code, decimal or 0x hex")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := validation.ValidateUserID(*id); err != nil {
		return err
	}
	code, err := models.ParseCode(*codeFlag)
	if err != nil {
		return err
	}

	resp, err := c.client.AddLogin(ctx, api.AddLoginRequest{UserID: *id, Code: code.String()})
	if err != nil {
		return err
	}

	c.io.Printf("Login challenge %s issued for %s\n", resp.Code, resp.UserID)
	return nil
}

type signedView struct {
	Scheme    string
	PublicKey string
	Signature string
	Checked   bool
	Valid     bool
}

// RunSign погашает challenge и выводит подпись
func (c *Cli) RunSign(ctx context.Context, args []string) error {
	fs := newFlagSet("sign")
	codeFlag := fs.String("code", "", "challenge code")
	text := fs.String("message", "", "message to sign")
	file := fs.String("message-file", "", "file with the message to sign")
	verify := fs.Bool("verify", false, "verify the returned signature locally")
	if err := fs.Parse(args); err != nil {
		return err
	}

	code, err := models.ParseCode(*codeFlag)
	if err != nil {
		return err
	}
	message, err := readMessage(*text, *file)
	if err != nil {
		return err
	}

	resp, err := c.client.Sign(ctx, api.SignRequest{Code: code.String(), Message: string(message)})
	if err != nil {
		return err
	}

	view := signedView{
		Scheme:    resp.Scheme,
		PublicKey: resp.PublicKey,
		Signature: resp.Signature,
	}

	if *verify {
		valid, err := c.verify(resp.Scheme, resp.PublicKey, resp.Signature, message)
		if err != nil {
			return err
		}
		view.Checked, view.Valid = true, valid
	}

	if err := c.render("signed", signedTemplate, view); err != nil {
		return err
	}
	if view.Checked && !view.Valid {
		return fmt.Errorf("signature returned by the server does not verify")
	}
	return nil
}

// RunVerify проверяет подпись локально
func (c *Cli) RunVerify(args []string) error {
	fs := newFlagSet("verify")
	publicKey := fs.String("public-key", "", "public key hex")
	signature := fs.String("signature", "", "signature hex")
	text := fs.String("message", "", "signed message")
	file := fs.String("message-file", "", "file with the signed message")
	if err := fs.Parse(args); err != nil {
		return err
	}

	message, err := readMessage(*text, *file)
	if err != nil {
		return err
	}

	valid, err := c.verify(c.scheme.Name(), *publicKey, *signature, message)
	if err != nil {
		return err
	}
	if !valid {
		return fmt.Errorf("signature is not valid")
	}

	c.io.Println("Signature is valid")
	return nil
}

func (c *Cli) verify(schemeName, publicKeyHex, signatureHex string, message []byte) (bool, error) {
	if schemeName != c.scheme.Name() {
		return false, fmt.Errorf("server signs with %s, client is configured for %s", schemeName, c.scheme.Name())
	}

	publicKey, err := validation.DecodeRequiredHex("public key", publicKeyHex)
	if err != nil {
		return false, err
	}
	signature, err := validation.DecodeRequiredHex("signature", signatureHex)
	if err != nil {
		return false, err
	}

	return c.scheme.Verify(publicKey, message, signature), nil
}

// RunToken выпускает operator токен из общего с сервером секрета
func (c *Cli) RunToken(args []string) error {
	fs := newFlagSet("token")
	operator := fs.String("operator", "", "operator name")
	secret := fs.String("secret", "", "JWT secret (or ENABLE_JWT_SECRET)")
	ttl := fs.Duration("ttl", jwt.DefaultTTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *secret == "" {
		*secret = c.getenv("ENABLE_JWT_SECRET")
	}

	token, expiresIn, err := jwt.NewService(*secret, *ttl).GenerateToken(*operator)
	if err != nil {
		return err
	}

	c.io.Println(token)
	c.io.Printf("# expires in %s\n", time.Duration(expiresIn)*time.Second)
	return nil
}

// RunSalt генерирует соль для шифрования состояния сервера
func (c *Cli) RunSalt(args []string) error {
	fs := newFlagSet("salt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return err
	}

	c.io.Println(base64.StdEncoding.EncodeToString(salt))
	return nil
}

// RunHealth выводит состояние сервера
func (c *Cli) RunHealth(ctx context.Context) error {
	resp, err := c.client.Health(ctx)
	if err != nil {
		return err
	}
	return c.render("health", healthTemplate, resp)
}
