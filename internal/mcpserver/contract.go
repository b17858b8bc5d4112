package mcpserver

// StorageLayoutURI identifies the storage layout resource.
const StorageLayoutURI = "maxlift://storage-layout"

// StorageLayout describes how maxlift persists its data so that LLM
// consumers can reason about values returned by the tools.
const StorageLayout = `# Maxlift Storage Layout

Data lives in a key-value medium under two keys. Each value is a JSON array.

## gym-tracker-exercises

` + "```" + `json
[
  {"id": "1", "name": "Bench Press", "isCustom": false},
  {"id": "5d0f...", "name": "Front Squat", "isCustom": true}
]
` + "```" + `

Seeded exercises use ids "1" to "7" and isCustom=false. Exercises created
through add_exercise get a random UUID and isCustom=true. Names are not unique.

## gym-tracker-records

` + "```" + `json
[
  {"id": "9a1c...", "exerciseId": "1", "weight": 100, "date": "2024-01-01", "unit": "kg"}
]
` + "```" + `

## Rules

1. **date** is a calendar date, YYYY-MM-DD.
2. **unit** is "kg" or "lbs" and defaults to "kg". Weights are never converted.
3. **weight** must be greater than zero.
4. Records are listed oldest first. The current max of an exercise is its
   heaviest record; on a tie the earliest one wins.
5. Deleting an exercise deletes all of its records.
`
