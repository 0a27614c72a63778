// Package iocli abstracts terminal input and output for the CLI.
package iocli

// IO - ввод и вывод CLI
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	// ReadInput читает строку без завершающих пробелов
	ReadInput(prompt string) (string, error)
	// ReadSecret читает строку без эха, если ввод - терминал
	ReadSecret(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}
