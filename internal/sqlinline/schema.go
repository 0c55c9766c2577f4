package sqlinline

const QSchema = `--sql 54611371-2f82-4d92-a09e-bbe86a83dd78
create table if not exists campaigns (
    id               uuid primary key,
    name             text not null,
    description      text not null default '',
    target_amount    numeric(14,2) not null check (target_amount > 0),
    current_amount   numeric(14,2) not null default 0,
    start_date       date not null,
    end_date         date not null,
    category         text not null default 'other',
    status           text not null default 'draft',
    banner_path      text not null default '',
    created_by       text not null,
    approved_by      text,
    approved_at      timestamptz,
    rejection_reason text not null default '',
    created_at       timestamptz not null default now(),
    updated_at       timestamptz not null default now()
);

create table if not exists donations (
    id              uuid primary key,
    campaign_id     uuid not null references campaigns(id),
    donor_id        text,
    amount          numeric(14,2) not null check (amount > 0),
    payment_method  text not null,
    session_ref     text,
    external_txn_id text not null default '',
    status          text not null default 'pending',
    verified_by     text,
    verified_at     timestamptz,
    receipt_path    text not null default '',
    created_at      timestamptz not null default now()
);

create unique index if not exists donations_session_ref_idx
    on donations (session_ref) where session_ref is not null and session_ref <> '';

create table if not exists activity_log (
    id          uuid primary key,
    actor_id    text not null,
    action      text not null,
    entity_type text not null,
    entity_id   text not null,
    created_at  timestamptz not null default now()
);
`
