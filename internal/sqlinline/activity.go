package sqlinline

const QInsertActivity = `--sql dcc29cad-011b-4b79-a73e-ed9b4774d9dd
insert into activity_log (id, actor_id, action, entity_type, entity_id, created_at)
values ($1::uuid, $2, $3, $4, $5, now());
`

const QListActivity = `--sql c2a9a0b5-bf2a-410b-8661-e5c372563f00
select id, actor_id, action, entity_type, entity_id, created_at
from activity_log
order by created_at desc
limit $1::int;
`
