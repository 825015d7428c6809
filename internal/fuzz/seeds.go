package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxFuzzInput = 1 << 16 // 64 KiB
	maxSeedBytes = 16 << 10
)

var markupSeeds = []string{
	``,
	`<body class="main"></body>`,
	`<div></></div>`,
	`<g><path d="M0,12.5 L50,12.5 L50,25 L0,25 L0,12.5z"/></g>`,
	`<foo>{bar < baz ? <div></div> : <></>}</foo>`,
	`<!--lit-part BRUAAAUVAAA=--><?><!--/lit-part--><p>more</p>`,
	`<?xml version="1.0" encoding="utf-8"?><!DOCTYPE note [<!ENTITY x "y>">]><note a='1'>t</note>`,
	`<root><!-- a -- b --><![cdata[ x ]] y ]]><child/>tail</root>`,
	`<A render={() => <b>hi</b>} x="1" {...rest} s={"}"}/>`,
	"\xEF\xBB\xBF<p>é😀x</p>\n<p>line</p>",
	`<a href=/x/ b=c/>`,
	`<a><b><c></a>  </x> <1 < <!DOCTYPE html><!ELEMENT br EMPTY>`,
	`<unterminated attr="`,
	`<x y={`,
}

func addSeeds(f *testing.F) {
	for _, s := range markupSeeds {
		f.Add([]byte(s))
	}
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".xml", ".html", ".svg", ".jsx":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

func clamp(src []byte, n int) []byte {
	if len(src) > n {
		src = src[:n]
	}
	return append([]byte(nil), src...)
}
