// Package settings manages the named string lists the back office edits:
// carrier names, expense categories, and payment methods. The store is an
// interface so the persistence medium can change without touching call sites.
package settings

import (
	"context"
	"errors"
)

// List names one of the configurable string lists.
type List string

const (
	ListCarriers   List = "operadoras"
	ListCategories List = "categorias_despesa"
	ListMethods    List = "formas_pagamento"
)

// ErrUnknownList indicates a list name outside the fixed set.
var ErrUnknownList = errors.New("settings: unknown list")

// Store exposes get/add/remove/reset over named lists.
type Store interface {
	Get(ctx context.Context, list List) ([]string, error)
	Add(ctx context.Context, list List, value string) ([]string, error)
	Remove(ctx context.Context, list List, value string) ([]string, error)
	Reset(ctx context.Context, list List) ([]string, error)
}

// Defaults returns the compiled-in fallback for a list. Unknown lists get nil.
func Defaults(list List) []string {
	switch list {
	case ListCarriers:
		return []string{"Amil", "Bradesco Saúde", "SulAmérica", "Unimed", "NotreDame Intermédica", "Porto Seguro"}
	case ListCategories:
		return []string{"Salários", "Aluguel", "Marketing", "Telefonia", "Software", "Impostos", "Outros"}
	case ListMethods:
		return []string{"Pix", "Boleto", "Transferência", "Cartão de Crédito", "Dinheiro"}
	default:
		return nil
	}
}

// KnownList reports whether the list name belongs to the fixed set.
func KnownList(list List) bool {
	switch list {
	case ListCarriers, ListCategories, ListMethods:
		return true
	}
	return false
}
