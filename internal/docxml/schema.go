// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package docxml

import "encoding/xml"

// The types below mirror the subset of Godot's doc class.xsd that
// GDExtension plugins emit. Optional attributes are pointers so that an
// absent attribute can be told apart from an empty one.

type xmlClass struct {
	XMLName          xml.Name
	Name             string        `xml:"name,attr"`
	Inherits         *string       `xml:"inherits,attr"`
	BriefDescription string        `xml:"brief_description"`
	Description      string        `xml:"description"`
	Methods          []xmlMethod   `xml:"methods>method"`
	Members          []xmlMember   `xml:"members>member"`
	Signals          []xmlSignal   `xml:"signals>signal"`
	Constants        []xmlConstant `xml:"constants>constant"`
}

type xmlMethod struct {
	Name        string     `xml:"name,attr"`
	Qualifiers  string     `xml:"qualifiers,attr"`
	Return      *xmlReturn `xml:"return"`
	Params      []xmlParam `xml:"param"`
	Description string     `xml:"description"`
}

type xmlReturn struct {
	Type *string `xml:"type,attr"`
	Enum string  `xml:"enum,attr"`
}

type xmlParam struct {
	Index   string  `xml:"index,attr"`
	Name    string  `xml:"name,attr"`
	Type    *string `xml:"type,attr"`
	Enum    string  `xml:"enum,attr"`
	Default *string `xml:"default,attr"`
}

type xmlMember struct {
	Name        string  `xml:"name,attr"`
	Type        *string `xml:"type,attr"`
	Enum        string  `xml:"enum,attr"`
	Setter      *string `xml:"setter,attr"`
	Getter      *string `xml:"getter,attr"`
	Default     *string `xml:"default,attr"`
	Description string  `xml:",chardata"`
}

type xmlSignal struct {
	Name        string     `xml:"name,attr"`
	Params      []xmlParam `xml:"param"`
	Description string     `xml:"description"`
}

type xmlConstant struct {
	Name        string  `xml:"name,attr"`
	Value       *string `xml:"value,attr"`
	Enum        string  `xml:"enum,attr"`
	IsBitfield  string  `xml:"is_bitfield,attr"`
	Description string  `xml:",chardata"`
}
