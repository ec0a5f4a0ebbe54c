package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConsolePrompt implementa Notifier e Confirmer sobre o terminal
type ConsolePrompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsolePrompt cria uma nova instância de ConsolePrompt
func NewConsolePrompt(in io.Reader, out io.Writer) *ConsolePrompt {
	return &ConsolePrompt{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Notify exibe a mensagem e espera o operador pressionar Enter
func (p *ConsolePrompt) Notify(message string) {
	fmt.Fprintf(p.out, "%s [Enter]", message)
	_, _ = p.in.ReadString('\n')
}

// Confirm aceita "s", "sim", "y" ou "yes"
func (p *ConsolePrompt) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s [s/N] ", prompt)
	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

// Ask lê uma linha de resposta; current é exibido e mantido quando a resposta é vazia
func (p *ConsolePrompt) Ask(label, current string) string {
	if current != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	answer, _ := p.in.ReadString('\n')
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return current
	}
	return answer
}
