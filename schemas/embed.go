// Package schemas holds the JSON Schema documents used to validate model
// replies. The files are embedded so the binary does not depend on the
// working directory.
package schemas

import "embed"

// SkillList is the file name of the skill extraction reply schema.
const SkillList = "skill_list.schema.json"

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
