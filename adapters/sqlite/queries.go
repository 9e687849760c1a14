package sqlite

const createTables = `
CREATE TABLE IF NOT EXISTS conversations (
  id TEXT PRIMARY KEY,
  personality TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
  id TEXT PRIMARY KEY,
  conversation_id TEXT NOT NULL,
  role TEXT NOT NULL,
  content TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_conversation
  ON messages (conversation_id, created_at);
`

const insertConversation = `
INSERT INTO conversations (id, personality, created_at)
VALUES (?, ?, ?);`

const insertMessage = `
INSERT INTO messages (id, conversation_id, role, content, created_at)
VALUES (?, ?, ?, ?, ?);`

// rowid breaks ties when two appends land on the same timestamp.
const selectMessages = `
SELECT id, conversation_id, role, content, created_at
FROM messages
WHERE conversation_id = ?
ORDER BY created_at ASC, rowid ASC;`

const selectConversation = `
SELECT id, personality, created_at
FROM conversations
WHERE id = ?;`

const countConversations = `
SELECT COUNT(*) FROM conversations;`

// The ORDER BY column and direction are interpolated from a whitelist in
// listQuery; only the offset and limit ride as parameters.
const selectConversationsPage = `
SELECT id, personality, created_at
FROM conversations
ORDER BY %s %s
LIMIT ? OFFSET ?;`
