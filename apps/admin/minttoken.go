package main

import (
	"fmt"

	echoapi "github.com/trezcool/elimu/apps/api/echo"
	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/progress"
)

// mintToken prints a signed access token for the given identity.
// Meant for local development against the API.
func (cli *commandLine) mintToken(userID, name, email string, roles []string) error {
	ident := progress.Identity{
		ID:    core.CleanString(userID),
		Name:  core.CleanString(name),
		Email: core.CleanString(email, true /* lower */),
	}
	claims := echoapi.GetIdentityClaims(cli.conf, ident, roles...)
	token, err := echoapi.GenerateToken(cli.conf, claims)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
