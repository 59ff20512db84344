package classification

import (
	"errors"
	"fmt"
)

// ErrRuleOverlap is returned when one account pattern of a rule table is a prefix of another.
var ErrRuleOverlap = errors.New("overlapping account patterns")

type patternRef struct {
	lineCode string
	pattern  string
	contra   bool
}

type trieNode struct {
	children map[byte]*trieNode
	terminal *patternRef
}

// prefixTrie resolves an account number to the single pattern claiming it.
// Patterns never overlap, so the first terminal met while walking the account is the match.
type prefixTrie struct {
	root *trieNode
}

func newPrefixTrie() *prefixTrie {
	return &prefixTrie{root: &trieNode{children: map[byte]*trieNode{}}}
}

func (t *prefixTrie) insert(ref patternRef) error {
	n := t.root
	for i := 0; i < len(ref.pattern); i++ {
		if n.terminal != nil {
			return overlapError(*n.terminal, ref)
		}
		child, ok := n.children[ref.pattern[i]]
		if !ok {
			child = &trieNode{children: map[byte]*trieNode{}}
			n.children[ref.pattern[i]] = child
		}
		n = child
	}
	if n.terminal != nil {
		return overlapError(*n.terminal, ref)
	}
	if existing := firstTerminal(n); existing != nil {
		return overlapError(*existing, ref)
	}
	n.terminal = &ref
	return nil
}

func (t *prefixTrie) match(account string) (patternRef, bool) {
	n := t.root
	for i := 0; i < len(account); i++ {
		child, ok := n.children[account[i]]
		if !ok {
			return patternRef{}, false
		}
		n = child
		if n.terminal != nil {
			return *n.terminal, true
		}
	}
	return patternRef{}, false
}

func firstTerminal(n *trieNode) *patternRef {
	for _, child := range n.children {
		if child.terminal != nil {
			return child.terminal
		}
		if ref := firstTerminal(child); ref != nil {
			return ref
		}
	}
	return nil
}

func overlapError(existing, added patternRef) error {
	return fmt.Errorf("%w: %q (line %s) and %q (line %s)",
		ErrRuleOverlap, existing.pattern, existing.lineCode, added.pattern, added.lineCode)
}
