// AngelaMos | 2026
// keygen.go

package main

import (
	"fmt"
	"os"

	"github.com/carterperez-dev/greensteps/internal/auth"
)

type KeygenCmd struct {
	PrivateKey string `help:"Where to write the PEM private key." type:"path" default:"keys/session.pem" name:"private-key"`
	Force      bool   `help:"Overwrite an existing key."`
}

func (c *KeygenCmd) Run(_ *Globals) error {
	if _, err := os.Stat(c.PrivateKey); err == nil && !c.Force {
		return fmt.Errorf("%s already exists, pass --force to replace it", c.PrivateKey)
	}

	if err := auth.GenerateKeyPair(c.PrivateKey); err != nil {
		return err
	}

	fmt.Printf("wrote %s\nset SESSION_PRIVATE_KEY_PATH=%s to use it\n", c.PrivateKey, c.PrivateKey)
	return nil
}
