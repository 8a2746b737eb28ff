// Package asset holds the fixed catalog of claimable asset classes.
package asset

import (
	"github.com/rallyprotocol/rally-claim/pkg/address"
)

// Chain identifies the network a collection lives on
type Chain string

const (
	ChainSolana   Chain = "solana"
	ChainEthereum Chain = "ethereum"
	ChainBase     Chain = "base"
	ChainBSC      Chain = "bsc"
)

// Family returns the wallet address family used on the chain
func (c Chain) Family() address.Family {
	switch c {
	case ChainSolana:
		return address.FamilySolana
	case ChainEthereum, ChainBase, ChainBSC:
		return address.FamilyEVM
	default:
		return address.FamilyUnknown
	}
}

// Collection is one on-chain contract or mint that qualifies for a class
type Collection struct {
	Chain   Chain
	Address string
}

// Class is a claimable asset class
type Class struct {
	ID           string
	Name         string
	Collections  []Collection // first entry is the primary collection
	RewardPoints int
}

// Primary returns the first collection of the class
func (c Class) Primary() Collection {
	return c.Collections[0]
}

// Catalog is an immutable set of asset classes
type Catalog struct {
	classes map[string]Class
	ids     []string
}

// NewCatalog builds a catalog, keeping the declaration order for IDs
func NewCatalog(classes ...Class) *Catalog {
	c := &Catalog{classes: make(map[string]Class, len(classes))}
	for _, class := range classes {
		if _, dup := c.classes[class.ID]; dup {
			continue
		}
		c.classes[class.ID] = class
		c.ids = append(c.ids, class.ID)
	}
	return c
}

// Default returns the four classes the service ships with
func Default() *Catalog {
	return NewCatalog(
		Class{
			ID:           "wallchain",
			Name:         "Quack Heads",
			Collections:  []Collection{{Chain: ChainSolana, Address: "HxSsfM9WxQWj79chAUNL6osZxQjJj5iMUwrjEfRBvYBR"}},
			RewardPoints: 2500,
		},
		Class{
			ID:           "kaito",
			Name:         "Yapybaras",
			Collections:  []Collection{{Chain: ChainEthereum, Address: "0x9830b32f7210f0857a859c2a86387e4d1bb760b8"}},
			RewardPoints: 1800,
		},
		Class{
			ID:           "skaito",
			Name:         "sKAITO",
			Collections:  []Collection{{Chain: ChainBase, Address: "0x548D3B444da39686d1a6F1544781d154e7cD1EF7"}},
			RewardPoints: 1500,
		},
		Class{
			ID:   "cookie",
			Name: "Cookie",
			Collections: []Collection{
				{Chain: ChainBase, Address: "0xC0041EF357B183448B235a8Ea73Ce4E4eC8c265F"},
				{Chain: ChainBSC, Address: "0x09fb72CBEa86AFBB5E5A4ac6f48a783A01799017"},
			},
			RewardPoints: 1200,
		},
	)
}

// Lookup returns the class with the given id
func (c *Catalog) Lookup(id string) (Class, bool) {
	class, ok := c.classes[id]
	return class, ok
}

// IDs returns class ids in declaration order
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.ids...)
}

// Classes returns all classes in declaration order
func (c *Catalog) Classes() []Class {
	out := make([]Class, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.classes[id])
	}
	return out
}
