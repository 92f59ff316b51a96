package sqlinline

// Donation reads. Grouping, dedup and recurring detection happen in Go; these queries
// only narrow rows by status, scope, window and donor.

const QSelectCompletedDonations = `--sql 91d534cb-cab7-47d6-a3bd-b7ee3e7caadb
select
    d.id,
    d.project_id,
    d.organization_id,
    d.donor_id,
    d.donor_name,
    d.donor_phone,
    d.amount,
    d.status,
    d.payment_transaction_id,
    d.payment_method,
    d.payment_details,
    d.paid_at,
    d.created_at
from donations d
where d.status = 'completed'
  and (
      ($1::text = 'organization' and d.organization_id = $2::bigint)
      or ($1::text = 'project' and d.project_id = $2::bigint)
  )
  and ($3::timestamptz is null or coalesce(d.paid_at, d.created_at) >= $3::timestamptz)
  and ($4::bigint[] is null or d.id = any($4::bigint[]))
  and (
      ($5::bigint is null and $6::text is null)
      or d.donor_id = $5::bigint
      or d.donor_phone = $6::text
  )
order by d.id;
`

const QSelectTransactionMetadata = `--sql bb979fc9-6280-42a8-86b6-8e69c638d08e
select id, payment_details
from payment_transactions
where id = any($1::bigint[])
order by id;
`
