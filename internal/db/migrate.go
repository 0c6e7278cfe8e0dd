package db

import "context"

// The unique constraint on (provider_type, provider_id) is load-bearing:
// it is what arbitrates two concurrent sign-ins for the same unseen
// identity. See resolver.DBStore.
const schemaMigration = `
DO $$ BEGIN
    CREATE TYPE social_provider_type AS ENUM ('discord', 'google');
EXCEPTION
    WHEN duplicate_object THEN NULL;
END $$;

CREATE TABLE IF NOT EXISTS users (
    id serial PRIMARY KEY,
    default_social_profile social_provider_type NOT NULL
);

CREATE TABLE IF NOT EXISTS social_profiles (
    id serial PRIMARY KEY,
    user_id integer NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    provider_type social_provider_type NOT NULL,
    provider_id varchar(255) NOT NULL,
    provider_username varchar(100) NOT NULL,
    provider_avatar varchar(255),
    CONSTRAINT social_profiles_provider_identity_unique
        UNIQUE (provider_type, provider_id)
);

CREATE INDEX IF NOT EXISTS social_profiles_user_id_idx
ON social_profiles (user_id);

CREATE TABLE IF NOT EXISTS workspaces (
    id serial PRIMARY KEY,
    user_id integer NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    title varchar(50) NOT NULL,
    description varchar(255)
);

CREATE TABLE IF NOT EXISTS labels (
    id serial PRIMARY KEY,
    workspace_id integer NOT NULL REFERENCES workspaces (id) ON DELETE CASCADE,
    user_id integer NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    color varchar(30) NOT NULL,
    description varchar(30)
);

CREATE TABLE IF NOT EXISTS task_groups (
    id serial PRIMARY KEY,
    workspace_id integer NOT NULL REFERENCES workspaces (id) ON DELETE CASCADE,
    user_id integer NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    title varchar(50) NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
    id serial PRIMARY KEY,
    task_group_id integer NOT NULL REFERENCES task_groups (id) ON DELETE CASCADE,
    user_id integer NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    title varchar(50) NOT NULL,
    description varchar(255) NOT NULL,
    labels_ids integer[]
);
`

// RunMigration applies the embedded schema. Every statement is idempotent,
// so startup can run it unconditionally.
func RunMigration(ctx context.Context, db *DB) error {
	_, err := db.ExecContext(ctx, schemaMigration)
	return err
}
