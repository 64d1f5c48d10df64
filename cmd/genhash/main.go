// Imprime el hash bcrypt de una contraseña, listo para pegar en la
// tabla usuario. Uso: genhash <contraseña>
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

const costo = 12

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "uso: genhash <contraseña>")
		os.Exit(1)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), costo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(string(h))
}
