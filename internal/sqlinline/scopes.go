package sqlinline

const QResolveProjectScope = `--sql ef6db016-6453-4034-8f6a-24026b514fa5
select p.id, p.organization_id
from projects p
where p.id = $1::bigint
limit 1;
`

const QResolveOrganizationScope = `--sql 097a9353-bb1c-419b-8c88-7d62332dcaad
select o.id
from organizations o
where o.id = $1::bigint
limit 1;
`
