// Package promptxml renders engine output as XML blocks for system
// prompt injection.
package promptxml

import (
	"encoding/xml"
	"fmt"

	"github.com/flexigpt/skillrouter-go/spec"
)

type availableSkills struct {
	XMLName xml.Name         `xml:"available_skills"`
	Skills  []availableSkill `xml:"skill"`
}

type availableSkill struct {
	ID          string `xml:"id"`
	Name        string `xml:"name"`
	Description string `xml:"description"`
}

type mergedGuidance struct {
	XMLName    xml.Name        `xml:"merged_guidance"`
	RequestID  string          `xml:"request_id,attr,omitempty"`
	Blocks     []guidanceBlock `xml:"guidance"`
	Advisories *advisoryList   `xml:"advisories,omitempty"`
}

// Bodies go through CDATA so markdown survives verbatim.
type guidanceBlock struct {
	SkillID string `xml:"skill,attr"`
	Name    string `xml:"name,attr,omitempty"`
	Body    string `xml:",cdata"`
}

type advisoryList struct {
	Advisories []advisory `xml:"advisory"`
}

type advisory struct {
	SkillA string `xml:"skill_a,attr"`
	SkillB string `xml:"skill_b,attr"`
	Topic  string `xml:"topic,attr"`
	Kind   string `xml:"kind,attr"`
	Note   string `xml:",chardata"`
}

// AvailableSkillsXML builds <available_skills> for system prompts.
// Skills are emitted in the order given (registration order).
func AvailableSkillsXML(skills []spec.Skill) (string, error) {
	out := availableSkills{Skills: make([]availableSkill, 0, len(skills))}
	for _, sk := range skills {
		out.Skills = append(out.Skills, availableSkill{
			ID:          sk.ID,
			Name:        sk.Name,
			Description: sk.Description,
		})
	}
	b, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("xml encode: %w", err)
	}
	return string(b), nil
}

// MergedGuidanceXML builds <merged_guidance> containing the active
// bodies in active-set order plus any advisories.
func MergedGuidanceXML(requestID spec.RequestID, g spec.MergedGuidance) (string, error) {
	out := mergedGuidance{
		RequestID: string(requestID),
		Blocks:    make([]guidanceBlock, 0, len(g.Blocks)),
	}
	for _, blk := range g.Blocks {
		out.Blocks = append(out.Blocks, guidanceBlock{
			SkillID: blk.SkillID,
			Name:    blk.Name,
			Body:    blk.Body,
		})
	}
	if len(g.Advisories) > 0 {
		lst := &advisoryList{Advisories: make([]advisory, 0, len(g.Advisories))}
		for _, adv := range g.Advisories {
			lst.Advisories = append(lst.Advisories, advisory{
				SkillA: adv.SkillA,
				SkillB: adv.SkillB,
				Topic:  adv.Topic,
				Kind:   string(adv.Kind),
				Note:   adv.Note,
			})
		}
		out.Advisories = lst
	}
	b, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("xml encode: %w", err)
	}
	return string(b), nil
}
