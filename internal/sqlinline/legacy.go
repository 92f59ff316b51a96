package sqlinline

const QLegacyHasOrganization = `--sql b0343514-1f9b-4a25-baf3-bf8341db7063
select exists(
    select 1 from legacy_donation_snapshots where organization_id = $1::bigint
);
`

const QLegacySelectSnapshot = `--sql 0de6b74e-b112-4524-bfb3-02670b913822
select organization_id, kind, position, donor_label, total_amount, donations_count, first_donation_at
from legacy_donation_snapshots
where organization_id = $1::bigint
  and kind = $2::text
order by position;
`

const QLegacyReplaceSnapshot = `--sql afff9c7a-8262-454c-a5cf-496b0a611779
with removed as (
    delete from legacy_donation_snapshots
    where organization_id = $1::bigint
      and kind = $2::text
)
insert into legacy_donation_snapshots
    (organization_id, kind, position, donor_label, total_amount, donations_count, first_donation_at, imported_at)
select $1::bigint, $2::text, r.position, r.donor_label, r.total_amount, r.donations_count, r.first_donation_at, now()
from unnest($3::int[], $4::text[], $5::bigint[], $6::int[], $7::timestamptz[])
    as r(position, donor_label, total_amount, donations_count, first_donation_at);
`
